package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ontoeval/eval"
)

func TestMemoryStore(t *testing.T) {
	s, err := Open(Memory, "")
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	m := &eval.Metrics{Correctness: 0.5, RefClasses: 2, Mode: eval.ModeTriples}
	rec := NewRecord("abc", m)
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", got.ID)
	require.Equal(t, "triples", got.Mode)
	require.Equal(t, m, got.Metrics)
	require.True(t, rec.Created.Equal(got.Created))

	_, err = s.Get(ctx, "missing")
	require.True(t, errors.Is(err, ErrNotFound))

	require.Error(t, s.Put(ctx, &Record{Metrics: m}))
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("cassandra", t.TempDir())
	require.True(t, errors.Is(err, ErrUnknownBackend))
	require.Contains(t, Backends(), Memory)
}

func TestOpenNone(t *testing.T) {
	s, err := Open("", "")
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestMemoryStoreLimit(t *testing.T) {
	s := NewMemory(2)
	defer s.Close()
	ctx := context.Background()
	m := &eval.Metrics{Mode: eval.ModeElements}

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put(ctx, NewRecord(id, m)))
	}
	require.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, "a")
	require.True(t, errors.Is(err, ErrNotFound))
	for _, id := range []string{"b", "c"} {
		_, err = s.Get(ctx, id)
		require.NoError(t, err, id)
	}

	// Replacing a kept record does not evict another one.
	require.NoError(t, s.Put(ctx, NewRecord("c", m)))
	require.Equal(t, 2, s.Len())
	_, err = s.Get(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, NewRecord("d", m)))
	_, err = s.Get(ctx, "b")
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, DefaultMemoryLimit, NewMemory(0).limit)
}
