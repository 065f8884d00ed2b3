// Package load reads ontology documents into graphs. Documents given as
// paths and documents given as in-memory content go through the same parse
// path: content is first written to a temporary file which is always removed.
package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/graph"
	"github.com/cayleygraph/ontoeval/internal/decompressor"
	"github.com/cayleygraph/ontoeval/internal/lru"

	// Load all supported quad formats.
	_ "github.com/cayleygraph/ontoeval/turtle"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/nquads"
	_ "github.com/cayleygraph/quad/pquads"
)

// DefaultFormat is used when neither a format name nor a known file extension is given.
const DefaultFormat = "turtle"

var (
	ErrNoSource      = errors.New("neither path nor content is set")
	ErrUnknownFormat = errors.New("unknown quad format")
)

// Source is one ontology document, given either as a path or as content.
// Path takes precedence. A nil Content means unset; an empty one is an empty document.
type Source struct {
	Path    string
	Content []byte
	// Format is a registered quad format name; empty means detect by
	// extension, falling back to the loader default.
	Format string
}

// IsSet reports whether the source names a document.
func (s Source) IsSet() bool { return s.Path != "" || s.Content != nil }

// ParseError is returned when a document is not valid in its serialization format.
type ParseError struct {
	// Side names which ontology failed ("reference" or "generated"), if known.
	Side   string
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Side != "" {
		return fmt.Sprintf("cannot parse %s ontology: %v", e.Side, e.Err)
	}
	return fmt.Sprintf("cannot parse %s document %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader parses ontology documents. It holds no per-call state and may be
// shared between goroutines.
type Loader struct {
	fs      afero.Fs
	tempDir string
	format  string
	cache   *lru.Cache[string, *graph.Graph]
}

type Option func(*Loader)

// WithFs sets the filesystem documents are read from and temporary files are written to.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithTempDir sets the directory for temporary files. Empty means the system default.
func WithTempDir(dir string) Option {
	return func(l *Loader) { l.tempDir = dir }
}

// WithFormat sets the format used when it cannot be detected.
func WithFormat(name string) Option {
	return func(l *Loader) {
		if name != "" {
			l.format = name
		}
	}
}

// WithCache keeps up to size graphs parsed from in-memory content, keyed by
// format and content digest. Cached graphs are shared and must not be modified.
// Graphs with blank nodes are never cached. Caching is off unless size > 0.
func WithCache(size int) Option {
	return func(l *Loader) {
		if size > 0 {
			l.cache = lru.New[string, *graph.Graph](size)
		}
	}
}

// New returns a loader reading from the OS filesystem.
func New(opts ...Option) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		format: DefaultFormat,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document named by src.
func (l *Loader) Load(ctx context.Context, src Source) (*graph.Graph, error) {
	switch {
	case src.Path != "":
		return l.LoadFile(ctx, src.Path, src.Format)
	case src.Content != nil:
		return l.LoadContent(ctx, src.Content, src.Format)
	}
	return nil, ErrNoSource
}

// compressedExts are stripped before looking up a format by extension.
var compressedExts = []string{".gz", ".bz2"}

// Format resolves a format by name, or by the extension of path when name is empty.
func (l *Loader) Format(path, name string) (*quad.Format, error) {
	if name == "" {
		for _, ext := range compressedExts {
			path = strings.TrimSuffix(path, ext)
		}
		if f := quad.FormatByExt(strings.ToLower(filepath.Ext(path))); f != nil && f.Reader != nil {
			return f, nil
		}
		name = l.format
	}
	f := quad.FormatByName(name)
	if f == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	} else if f.Reader == nil {
		return nil, fmt.Errorf("decoding of %q is not supported", name)
	}
	return f, nil
}

// LoadFile parses the document at path. Gzip and bzip2 compressed files are accepted.
// Blank node labels are scoped to this call, so blank nodes of two loads never
// compare equal even when the documents use the same labels.
func (l *Loader) LoadFile(ctx context.Context, path, format string) (*graph.Graph, error) {
	f, err := l.Format(path, format)
	if err != nil {
		return nil, err
	}
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file %q: %w", path, err)
	}
	defer file.Close()

	r, kind, err := decompressor.Detect(file)
	if err != nil {
		return nil, &ParseError{Path: path, Format: f.Name, Err: err}
	}
	if kind != decompressor.None && clog.V(2) {
		clog.Infof("decompressing %s input %q", kind, path)
	}

	qr := f.Reader(r)
	defer qr.Close()

	start := time.Now()
	scope := blankScope()
	g := graph.New()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := qr.ReadQuad()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Path: path, Format: f.Name, Err: err}
		}
		if err = g.AddQuad(scopeBlanks(q, scope)); err != nil && err != graph.ErrQuadExists {
			return nil, &ParseError{Path: path, Format: f.Name, Err: fmt.Errorf("%v: %w", q, err)}
		}
	}
	mTriplesLoaded.Observe(float64(g.Len()))
	if clog.V(1) {
		clog.Infof("loaded %d triples from %q (%s) in %v", g.Len(), path, f.Name, time.Since(start))
	}
	return g, nil
}

// LoadContent parses an in-memory document by writing it to a temporary file
// and loading that file. The file is removed before LoadContent returns.
func (l *Loader) LoadContent(ctx context.Context, content []byte, format string) (*graph.Graph, error) {
	f, err := l.Format("", format)
	if err != nil {
		return nil, err
	}
	if l.cache == nil {
		return l.loadContent(ctx, content, f)
	}
	key := contentKey(f.Name, content)
	if g, ok := l.cache.Get(key); ok {
		mCacheLookups.WithLabelValues("hit").Inc()
		return g, nil
	}
	mCacheLookups.WithLabelValues("miss").Inc()
	g, err := l.loadContent(ctx, content, f)
	if err != nil {
		return nil, err
	}
	if !hasBlanks(g) {
		l.cache.Put(key, g)
	}
	return g, nil
}

// blankScope returns a label prefix unique to one load.
func blankScope() string {
	return "b" + strings.ReplaceAll(uuid.NewString(), "-", "") + "_"
}

func scopeBlanks(q quad.Quad, scope string) quad.Quad {
	for _, d := range quad.Directions {
		if b, ok := q.Get(d).(quad.BNode); ok {
			q.Set(d, quad.BNode(scope+string(b)))
		}
	}
	return q
}

func hasBlanks(g *graph.Graph) bool {
	for _, q := range g.Quads() {
		for _, d := range quad.Directions {
			if _, ok := q.Get(d).(quad.BNode); ok {
				return true
			}
		}
	}
	return false
}

func contentKey(format string, content []byte) string {
	h := sha256.New()
	h.Write([]byte(format))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

func (l *Loader) loadContent(ctx context.Context, content []byte, f *quad.Format) (*graph.Graph, error) {
	ext := ""
	if len(f.Ext) > 0 {
		ext = f.Ext[0]
	}
	tmp, err := afero.TempFile(l.fs, l.tempDir, "ontoeval-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("could not create temporary file: %w", err)
	}
	name := tmp.Name()
	mTempFiles.Inc()
	defer func() {
		if err := l.fs.Remove(name); err != nil && !os.IsNotExist(err) {
			clog.Warningf("could not remove temporary file %q: %v", name, err)
		}
		mTempFiles.Dec()
	}()

	_, err = tmp.Write(content)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("could not write temporary file: %w", err)
	}
	return l.LoadFile(ctx, name, f.Name)
}
