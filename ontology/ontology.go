// Package ontology partitions the subjects of a graph into OWL element
// categories by exact rdf:type matches. No reasoning is performed.
package ontology

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/cayleygraph/ontoeval/graph"
	"github.com/cayleygraph/ontoeval/owl"
	"github.com/cayleygraph/ontoeval/score"
)

// Category names one partition of ontology elements.
type Category string

const (
	Classes            Category = "classes"
	ObjectProperties   Category = "object_properties"
	DatatypeProperties Category = "data_properties"
	Individuals        Category = "individuals"
)

// Categories lists all element categories in display order.
var Categories = []Category{Classes, ObjectProperties, DatatypeProperties, Individuals}

func (c Category) String() string {
	switch c {
	case Classes:
		return "Classes"
	case ObjectProperties:
		return "Object Properties"
	case DatatypeProperties:
		return "Data Properties"
	case Individuals:
		return "Individuals"
	}
	return string(c)
}

// ElementSet is a set of element identifiers: the N-Quads encoding of the
// subject term, compared exactly.
type ElementSet = score.Set[string]

var (
	rdfType = quad.IRI(rdf.NS + "type")

	// The top and bottom classes are declared by many ontologies but are never
	// counted as classes.
	sentinelClasses = []quad.Value{quad.IRI(owl.Thing), quad.IRI(owl.Nothing)}

	// Types whose instances are schema declarations, not individuals.
	metaTypes = map[quad.IRI]struct{}{
		quad.IRI(owl.Class):            {},
		quad.IRI(owl.ObjectProperty):   {},
		quad.IRI(owl.DatatypeProperty): {},
		quad.IRI(rdfs.NS + "Class"):    {},
		quad.IRI(rdf.NS + "Property"):  {},
	}
)

// Elements holds the categorized elements and axiom counts of one graph.
type Elements struct {
	Classes            ElementSet
	ObjectProperties   ElementSet
	DatatypeProperties ElementSet
	Individuals        ElementSet

	// Axioms is the number of distinct triples in the graph.
	Axioms int
}

// Extract categorizes the subjects of g.
func Extract(g *graph.Graph) *Elements {
	e := &Elements{
		Classes:            subjectsOfType(g, owl.Class),
		ObjectProperties:   subjectsOfType(g, owl.ObjectProperty),
		DatatypeProperties: subjectsOfType(g, owl.DatatypeProperty),
		Individuals:        score.NewSet[string](),
		Axioms:             g.Len(),
	}
	for _, v := range sentinelClasses {
		e.Classes.Remove(v.String())
	}
	for _, q := range g.Match(nil, rdfType, nil) {
		if iri, ok := q.Object.(quad.IRI); ok {
			if _, meta := metaTypes[iri]; meta {
				continue
			}
		}
		e.Individuals.Add(q.Subject.String())
	}
	return e
}

func subjectsOfType(g *graph.Graph, typ string) ElementSet {
	set := score.NewSet[string]()
	for _, s := range g.Subjects(rdfType, quad.IRI(typ)) {
		set.Add(s.String())
	}
	return set
}

// Category returns the element set of category c, or an empty set for an
// unknown category.
func (e *Elements) Category(c Category) ElementSet {
	switch c {
	case Classes:
		return e.Classes
	case ObjectProperties:
		return e.ObjectProperties
	case DatatypeProperties:
		return e.DatatypeProperties
	case Individuals:
		return e.Individuals
	}
	return score.NewSet[string]()
}

// All returns the union of all four categories.
func (e *Elements) All() ElementSet {
	return e.Classes.Union(e.ObjectProperties, e.DatatypeProperties, e.Individuals)
}

// Declarations is the number of schema declarations: classes plus object
// and datatype properties.
func (e *Elements) Declarations() int {
	return e.Classes.Len() + e.ObjectProperties.Len() + e.DatatypeProperties.Len()
}

// LogicalAxioms approximates the number of logical axioms as all triples
// minus schema declarations. This is a heuristic, not an entailment count.
func (e *Elements) LogicalAxioms() int {
	return LogicalAxioms(e.Axioms, e.Declarations())
}

// LogicalAxioms applies the logical axiom heuristic to raw counts.
func LogicalAxioms(axioms, declarations int) int {
	if n := axioms - declarations; n > 0 {
		return n
	}
	return 0
}

// AxiomSet returns the raw identities of all triples in g.
func AxiomSet(g *graph.Graph) score.Set[graph.Key] {
	return score.NewSet(g.Keys()...)
}
