// Package owl contains constants of the Web Ontology Language (OWL)
package owl

import "github.com/cayleygraph/quad/voc"

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

// Classes
const (
	Class              = NS + "Class"
	ObjectProperty     = NS + "ObjectProperty"
	DatatypeProperty   = NS + "DatatypeProperty"
	AnnotationProperty = NS + "AnnotationProperty"
	NamedIndividual    = NS + "NamedIndividual"
	Ontology           = NS + "Ontology"
	Restriction        = NS + "Restriction"

	// Thing is the class of all individuals.
	Thing = NS + "Thing"
	// Nothing is the empty class.
	Nothing = NS + "Nothing"
)

// Properties
const (
	UnionOf         = NS + "unionOf"
	EquivalentClass = NS + "equivalentClass"
	DisjointWith    = NS + "disjointWith"
	InverseOf       = NS + "inverseOf"
	OnProperty      = NS + "onProperty"
	Cardinality     = NS + "cardinality"
	MaxCardinality  = NS + "maxCardinality"
)
