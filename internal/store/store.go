// Package store keeps evaluation records in a hidalgo key-value database,
// so that a server can return earlier results by evaluation ID.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hidal-go/hidalgo/kv"
	"github.com/hidal-go/hidalgo/kv/flat"
	"github.com/hidal-go/hidalgo/kv/flat/btree"

	// Register all backends hidalgo supports.
	_ "github.com/hidal-go/hidalgo/kv/all"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/eval"
)

// Memory is the name of the in-memory backend.
const Memory = "memory"

// DefaultMemoryLimit is the number of records the in-memory backend keeps.
const DefaultMemoryLimit = 1024

var (
	ErrNotFound       = errors.New("evaluation not found")
	ErrUnknownBackend = errors.New("unknown store backend")
)

var evaluations = kv.Key{[]byte("evaluations")}

// Record is a stored evaluation result.
type Record struct {
	ID      string        `json:"id"`
	Created time.Time     `json:"created"`
	Mode    string        `json:"mode"`
	Metrics *eval.Metrics `json:"metrics"`
}

// NewRecord returns a record of m created now.
func NewRecord(id string, m *eval.Metrics) *Record {
	return &Record{ID: id, Created: time.Now().UTC(), Mode: m.Mode.String(), Metrics: m}
}

type Store struct {
	db kv.KV

	// limit bounds the records written through this store; 0 is unbounded.
	limit int
	mu    sync.Mutex
	order []string // oldest first
}

// New wraps an open database.
func New(db kv.KV) *Store {
	return &Store{db: db}
}

// NewMemory returns a store that lives in memory and keeps at most limit
// records, dropping the oldest first. A limit below 1 means DefaultMemoryLimit.
func NewMemory(limit int) *Store {
	if limit < 1 {
		limit = DefaultMemoryLimit
	}
	s := New(flat.Upgrade(btree.New()))
	s.limit = limit
	return s
}

func backendName(name string) string {
	// Names are nicer without the "flat." prefix.
	return strings.TrimPrefix(name, "flat.")
}

// Backends lists the names accepted by Open.
func Backends() []string {
	names := []string{Memory}
	for _, r := range kv.List() {
		if !r.Volatile {
			names = append(names, backendName(r.Name))
		}
	}
	sort.Strings(names)
	return names
}

// Open opens the named backend. Persistent backends store their files under
// path, which is created if needed. An empty backend means no store: Open
// returns nil and no error.
func Open(backend, path string) (*Store, error) {
	switch backend {
	case "":
		return nil, nil
	case Memory:
		return NewMemory(DefaultMemoryLimit), nil
	}
	for _, r := range kv.List() {
		if r.Volatile || (r.Name != backend && backendName(r.Name) != backend) {
			continue
		}
		if path == "" {
			return nil, fmt.Errorf("store backend %q requires a path", backend)
		}
		if err := os.MkdirAll(path, 0700); err != nil {
			return nil, err
		}
		db, err := r.OpenPath(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %s store at %q: %w", backend, path, err)
		}
		clog.Infof("storing evaluations in %s database at %q", backend, path)
		return New(db), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
}

func recordKey(id string) kv.Key {
	return evaluations.AppendBytes([]byte(id))
}

// Put stores rec under its ID, replacing any earlier record.
func (s *Store) Put(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return errors.New("record has no id")
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var (
		added bool
		evict []string
	)
	err = kv.Update(ctx, s.db, func(tx kv.Tx) error {
		added, evict = false, nil
		if s.limit > 0 {
			_, err := tx.Get(ctx, recordKey(rec.ID))
			if err == kv.ErrNotFound {
				added = true
				if n := len(s.order) + 1 - s.limit; n > 0 {
					evict = s.order[:n]
				}
			} else if err != nil {
				return err
			}
			for _, id := range evict {
				if err := tx.Del(ctx, recordKey(id)); err != nil {
					return err
				}
			}
		}
		return tx.Put(ctx, recordKey(rec.ID), data)
	})
	if err != nil || !added {
		return err
	}
	if len(evict) > 0 && clog.V(2) {
		clog.Infof("evicted %d evaluation records", len(evict))
	}
	s.order = append(s.order[len(evict):], rec.ID)
	return nil
}

// Len returns the number of records written through s that are still kept.
// It is only tracked for bounded stores.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Get returns the record stored under id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := kv.View(ctx, s.db, func(tx kv.Tx) error {
		data, err := tx.Get(ctx, recordKey(id))
		if err == kv.ErrNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	if rec.Metrics != nil {
		rec.Metrics.Mode, _ = eval.ParseMode(rec.Mode)
	}
	return &rec, nil
}

// Ping checks that the database accepts transactions.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.View(ctx, s.db, func(tx kv.Tx) error { return nil })
}

func (s *Store) Close() error {
	return s.db.Close()
}
