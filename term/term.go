// Package term maps RDF terms to lowercase comparison keys, so that terms
// which differ only in namespace, case or literal annotations compare equal.
package term

import (
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/ontoeval/graph"
	"github.com/cayleygraph/ontoeval/score"
)

// BlankNode is the normalized form of every blank node.
const BlankNode = "bnode"

// Triple is a triple of normalized terms.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// Normalize returns the comparison key of v. It never fails.
//
// IRIs are reduced to their local name: the part after the last '#', or
// after the last '/' when there is no '#'. Literals keep only their lexical
// value. All blank nodes are the same.
func Normalize(v quad.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case quad.IRI:
		return LocalName(string(v))
	case quad.BNode:
		return BlankNode
	case quad.String:
		return strings.ToLower(string(v))
	case quad.TypedString:
		return strings.ToLower(string(v.Value))
	case quad.LangString:
		return strings.ToLower(string(v.Value))
	case quad.TypedStringer:
		return strings.ToLower(string(v.TypedString().Value))
	default:
		return strings.ToLower(v.String())
	}
}

// LocalName lowercases the fragment or last path segment of an IRI.
func LocalName(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return strings.ToLower(iri[i+1:])
	}
	return strings.ToLower(iri[strings.LastIndexByte(iri, '/')+1:])
}

// NormalizeQuad normalizes the three terms of q; the label is ignored.
func NormalizeQuad(q quad.Quad) Triple {
	return Triple{
		Subject:   Normalize(q.Subject),
		Predicate: Normalize(q.Predicate),
		Object:    Normalize(q.Object),
	}
}

// NormalizeGraph returns the set of normalized triples of g. Distinct triples
// may collapse into one.
func NormalizeGraph(g *graph.Graph) score.Set[Triple] {
	out := score.NewSet[Triple]()
	for _, q := range g.Quads() {
		out.Add(NormalizeQuad(q))
	}
	return out
}
