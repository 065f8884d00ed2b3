// Package turtle is a quad reader for the Turtle (Terse RDF Triple Language)
// format, built on github.com/knakk/rdf. Importing it registers the "turtle"
// format in the quad format registry.
package turtle

import (
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"
	"github.com/knakk/rdf"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name: "turtle",
		Ext:  []string{".ttl"},
		Mime: []string{"text/turtle", "application/x-turtle"},
		Reader: func(r io.Reader) quad.ReadCloser {
			return NewReader(r)
		},
	})
}

// Reader reads triples from a Turtle document. Quads it returns never carry a label.
type Reader struct {
	dec rdf.TripleDecoder
}

var _ quad.ReadCloser = (*Reader)(nil)

// NewReader returns a Turtle reader that decodes r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: rdf.NewTripleDecoder(r, rdf.Turtle)}
}

// ReadQuad returns the next triple, or io.EOF at the end of the document.
func (r *Reader) ReadQuad() (quad.Quad, error) {
	t, err := r.dec.Decode()
	if err == io.EOF {
		return quad.Quad{}, io.EOF
	} else if err != nil {
		return quad.Quad{}, &SyntaxError{Err: err}
	}
	return quad.Quad{
		Subject:   Value(t.Subj),
		Predicate: Value(t.Pred),
		Object:    Value(t.Obj),
	}, nil
}

func (r *Reader) Close() error { return nil }

// SyntaxError is returned for documents that are not valid Turtle.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "turtle: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// Value converts a decoded term into a quad value.
func Value(t rdf.Term) quad.Value {
	switch t := t.(type) {
	case nil:
		return nil
	case rdf.IRI:
		return quad.IRI(t.String())
	case rdf.Blank:
		return quad.BNode(strings.TrimPrefix(t.String(), "_:"))
	case rdf.Literal:
		return literal(t)
	default:
		return quad.String(t.String())
	}
}

func literal(l rdf.Literal) quad.Value {
	s := quad.String(l.String())
	if lang := l.Lang(); lang != "" {
		return quad.LangString{Value: s, Lang: lang}
	}
	switch dt := l.DataType.String(); dt {
	case "", xsd.NS + "string":
		return s
	default:
		return quad.TypedString{Value: s, Type: quad.IRI(dt)}
	}
}
