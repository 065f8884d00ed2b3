package graph

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"
)

var (
	rdfType  = quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")
	owlClass = quad.IRI("http://www.w3.org/2002/07/owl#Class")
	cat      = quad.IRI("http://example.org/Cat")
	dog      = quad.IRI("http://example.org/Dog")
	label    = quad.IRI("http://www.w3.org/2000/01/rdf-schema#label")
)

var testSet = []quad.Quad{
	quad.Make(cat, rdfType, owlClass, nil),
	quad.Make(dog, rdfType, owlClass, nil),
	quad.Make(cat, label, quad.LangString{Value: "Cat", Lang: "en"}, nil),
	quad.Make(cat, label, quad.String("Cat"), nil),
}

func TestDedup(t *testing.T) {
	g := New(testSet...)
	require.Equal(t, 4, g.Len())

	require.Equal(t, ErrQuadExists, g.AddQuad(testSet[0]))
	// Labels are not part of the triple identity.
	require.Equal(t, ErrQuadExists, g.AddQuad(quad.Make(cat, rdfType, owlClass, "graph")))
	require.Equal(t, ErrInvalidQuad, g.AddQuad(quad.Quad{Subject: cat, Predicate: rdfType}))
	require.Equal(t, 4, g.Len())

	for _, q := range g.Quads() {
		require.Nil(t, q.Label)
	}
}

func TestMatch(t *testing.T) {
	g := New(testSet...)

	require.Len(t, g.Match(nil, nil, nil), 4)
	require.Len(t, g.Match(cat, nil, nil), 3)
	require.Len(t, g.Match(nil, rdfType, owlClass), 2)
	require.Len(t, g.Match(cat, label, nil), 2)
	require.Equal(t, []quad.Quad{testSet[3]}, g.Match(nil, label, quad.String("Cat")))
	require.Empty(t, g.Match(quad.IRI("http://example.org/Cow"), nil, nil))
	require.Empty(t, g.Match(dog, label, nil))
}

func TestSubjects(t *testing.T) {
	g := New(testSet...)
	require.Equal(t, []quad.Value{cat, dog}, g.Subjects(rdfType, owlClass))
	require.Equal(t, []quad.Value{cat}, g.Subjects(label, nil))
	require.Empty(t, g.Subjects(rdfType, label))
}

func TestKeys(t *testing.T) {
	g := New(testSet[:2]...)
	require.Equal(t, []Key{
		{"<http://example.org/Cat>", "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>", "<http://www.w3.org/2002/07/owl#Class>"},
		{"<http://example.org/Dog>", "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>", "<http://www.w3.org/2002/07/owl#Class>"},
	}, g.Keys())
}
