package load

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/ontoeval/graph"
)

const tmpDir = "/tmp/ontoeval"

const catTTL = `@prefix ex: <http://example.org/> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
ex:Cat a owl:Class .
ex:Cat a owl:Class .
ex:Dog a owl:Class .
`

const catNT = `<http://example.org/Cat> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.org/Dog> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
`

func newMemLoader(t testing.TB) (*Loader, afero.Fs) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(tmpDir, 0755))
	return New(WithFs(fs), WithTempDir(tmpDir)), fs
}

func requireNoTempFiles(t testing.TB, fs afero.Fs) {
	infos, err := afero.ReadDir(fs, tmpDir)
	require.NoError(t, err)
	require.Empty(t, infos, "temporary files left behind")
}

func TestLoadContent(t *testing.T) {
	l, fs := newMemLoader(t)
	g, err := l.LoadContent(context.Background(), []byte(catTTL), "")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	requireNoTempFiles(t, fs)
}

func TestLoadContentParseError(t *testing.T) {
	l, fs := newMemLoader(t)
	_, err := l.LoadContent(context.Background(), []byte(`@prefix ex: <http://example.org/> .
ex:Cat ex:label "never closed .
`), "")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "unexpected error: %v", err)
	require.Equal(t, "turtle", perr.Format)
	require.NotNil(t, perr.Err)
	requireNoTempFiles(t, fs)

	perr.Side = "generated"
	require.Contains(t, perr.Error(), "cannot parse generated ontology: ")
}

func TestLoadContentEmpty(t *testing.T) {
	l, fs := newMemLoader(t)
	g, err := l.LoadContent(context.Background(), []byte{}, "")
	require.NoError(t, err)
	require.Equal(t, 0, g.Len())
	requireNoTempFiles(t, fs)
}

func TestLoadContentOS(t *testing.T) {
	dir := t.TempDir()
	l := New(WithTempDir(dir))
	for i := 0; i < 3; i++ {
		_, err := l.LoadContent(context.Background(), []byte(catTTL), "turtle")
		require.NoError(t, err)
		_, err = l.LoadContent(context.Background(), []byte(`ex:broken`), "turtle")
		require.Error(t, err)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLoadContentCache(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(tmpDir, 0755))
	l := New(WithFs(fs), WithTempDir(tmpDir), WithCache(2))
	ctx := context.Background()

	g1, err := l.LoadContent(ctx, []byte(catNT), "nquads")
	require.NoError(t, err)
	g2, err := l.LoadContent(ctx, []byte(catNT), "nquads")
	require.NoError(t, err)
	require.Same(t, g1, g2)

	g3, err := l.LoadContent(ctx, []byte(catNT), "turtle")
	require.NoError(t, err)
	require.NotSame(t, g1, g3)
	require.Equal(t, g1.Keys(), g3.Keys())

	for i := 0; i < 2; i++ {
		_, err = l.LoadContent(ctx, []byte(`ex:broken`), "turtle")
		require.Error(t, err)
	}
	requireNoTempFiles(t, fs)
}

func TestLoadContentTempFileFailure(t *testing.T) {
	l := New(WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())), WithTempDir(tmpDir))
	_, err := l.LoadContent(context.Background(), []byte(catTTL), "")
	require.Error(t, err)
	var perr *ParseError
	require.False(t, errors.As(err, &perr))
}

func TestLoadFileFormats(t *testing.T) {
	l, fs := newMemLoader(t)
	require.NoError(t, afero.WriteFile(fs, "/data/cats.nt", []byte(catNT), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/cats.ttl", []byte(catTTL), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/cats.txt", []byte(catTTL), 0644))

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(catTTL))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, afero.WriteFile(fs, "/data/cats.ttl.gz", buf.Bytes(), 0644))

	ctx := context.Background()
	for _, path := range []string{"/data/cats.nt", "/data/cats.ttl", "/data/cats.txt", "/data/cats.ttl.gz"} {
		g, err := l.Load(ctx, Source{Path: path})
		require.NoError(t, err, path)
		require.Equal(t, 2, g.Len(), path)
		require.Len(t, g.Match(quad.IRI("http://example.org/Cat"), nil, nil), 1, path)
	}

	// An explicit format overrides the extension.
	g, err := l.LoadFile(ctx, "/data/cats.nt", "turtle")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())

	require.NoError(t, afero.WriteFile(fs, "/data/broken.nq", []byte(
		"<http://example.org/Cat> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> .\n"), 0644))
	_, err = l.LoadFile(ctx, "/data/broken.nq", "")
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "unexpected error: %v", err)
	require.Equal(t, "nquads", perr.Format)
}

const blankTTL = `@prefix ex: <http://example.org/> .
_:x a ex:Cat .
ex:tom ex:friend _:x .
`

func TestLoadBlankNodesScoped(t *testing.T) {
	l, fs := newMemLoader(t)
	ctx := context.Background()

	g1, err := l.LoadContent(ctx, []byte(blankTTL), "")
	require.NoError(t, err)
	g2, err := l.LoadContent(ctx, []byte(blankTTL), "")
	require.NoError(t, err)
	require.Equal(t, 2, g1.Len())

	// Blank nodes within one document still join.
	q1 := g1.Match(nil, quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"), nil)
	require.Len(t, q1, 1)
	require.Len(t, g1.Match(nil, nil, q1[0].Subject), 1)

	// Across documents they never match.
	seen := make(map[graph.Key]bool)
	for _, k := range g1.Keys() {
		seen[k] = true
	}
	for _, k := range g2.Keys() {
		require.False(t, seen[k], "%v", k)
	}
	requireNoTempFiles(t, fs)
}

func TestLoadContentCacheSkipsBlankNodes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(tmpDir, 0755))
	l := New(WithFs(fs), WithTempDir(tmpDir), WithCache(2))
	ctx := context.Background()

	g1, err := l.LoadContent(ctx, []byte(blankTTL), "")
	require.NoError(t, err)
	g2, err := l.LoadContent(ctx, []byte(blankTTL), "")
	require.NoError(t, err)
	require.NotSame(t, g1, g2)
	require.NotEqual(t, g1.Keys(), g2.Keys())
}

func TestLoadSourceErrors(t *testing.T) {
	l, _ := newMemLoader(t)
	ctx := context.Background()

	_, err := l.Load(ctx, Source{})
	require.Equal(t, ErrNoSource, err)
	require.False(t, Source{}.IsSet())
	require.True(t, Source{Content: []byte{}}.IsSet())

	_, err = l.Load(ctx, Source{Content: []byte(catTTL), Format: "rdfxml"})
	require.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = l.Load(ctx, Source{Path: "/missing.ttl"})
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCanceled(t *testing.T) {
	l, fs := newMemLoader(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.LoadContent(ctx, []byte(catTTL), "")
	require.Equal(t, context.Canceled, err)
	requireNoTempFiles(t, fs)
}

func TestFormat(t *testing.T) {
	l := New(WithFormat("nquads"))
	f, err := l.Format("ontology.ttl", "")
	require.NoError(t, err)
	require.Equal(t, "turtle", f.Name)

	f, err = l.Format("ontology", "")
	require.NoError(t, err)
	require.Equal(t, "nquads", f.Name)

	f, err = l.Format("ontology.jsonld.bz2", "")
	require.NoError(t, err)
	require.Equal(t, "jsonld", f.Name)
}
