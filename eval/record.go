package eval

import (
	"github.com/cayleygraph/ontoeval/ontology"
	"github.com/cayleygraph/ontoeval/score"
)

// Metrics is the result of one evaluation. The JSON encoding is the record
// consumed by presentation layers.
type Metrics struct {
	Completeness float64 `json:"completeness"`
	Conciseness  float64 `json:"conciseness"`
	Correctness  float64 `json:"correctness"`

	RefClasses    int `json:"ref_classes"`
	GenClasses    int `json:"gen_classes"`
	CommonClasses int `json:"common_classes"`

	RefObjProps    int `json:"ref_obj_props"`
	GenObjProps    int `json:"gen_obj_props"`
	CommonObjProps int `json:"common_obj_props"`

	RefDataProps    int `json:"ref_data_props"`
	GenDataProps    int `json:"gen_data_props"`
	CommonDataProps int `json:"common_data_props"`

	RefIndividuals    int `json:"ref_individuals"`
	GenIndividuals    int `json:"gen_individuals"`
	CommonIndividuals int `json:"common_individuals"`

	RefAxioms    int `json:"ref_axioms"`
	GenAxioms    int `json:"gen_axioms"`
	CommonAxioms int `json:"common_axioms"`

	// Logical axiom counts are approximated as axioms minus class and
	// property declarations.
	RefLogicalAxioms    int `json:"ref_logical_axioms"`
	GenLogicalAxioms    int `json:"gen_logical_axioms"`
	CommonLogicalAxioms int `json:"common_logical_axioms"`

	// Mode is the comparison the three ratios come from.
	Mode Mode `json:"-"`
}

func (m *Metrics) setOverlap(c ontology.Category, o score.Overlap) {
	switch c {
	case ontology.Classes:
		m.RefClasses, m.GenClasses, m.CommonClasses = o.Reference, o.Generated, o.Common
	case ontology.ObjectProperties:
		m.RefObjProps, m.GenObjProps, m.CommonObjProps = o.Reference, o.Generated, o.Common
	case ontology.DatatypeProperties:
		m.RefDataProps, m.GenDataProps, m.CommonDataProps = o.Reference, o.Generated, o.Common
	case ontology.Individuals:
		m.RefIndividuals, m.GenIndividuals, m.CommonIndividuals = o.Reference, o.Generated, o.Common
	}
}

// Overlap returns the counts recorded for an element category.
func (m *Metrics) Overlap(c ontology.Category) score.Overlap {
	switch c {
	case ontology.Classes:
		return score.Overlap{Reference: m.RefClasses, Generated: m.GenClasses, Common: m.CommonClasses}
	case ontology.ObjectProperties:
		return score.Overlap{Reference: m.RefObjProps, Generated: m.GenObjProps, Common: m.CommonObjProps}
	case ontology.DatatypeProperties:
		return score.Overlap{Reference: m.RefDataProps, Generated: m.GenDataProps, Common: m.CommonDataProps}
	case ontology.Individuals:
		return score.Overlap{Reference: m.RefIndividuals, Generated: m.GenIndividuals, Common: m.CommonIndividuals}
	}
	return score.Overlap{}
}

// Axioms returns the triple counts.
func (m *Metrics) Axioms() score.Overlap {
	return score.Overlap{Reference: m.RefAxioms, Generated: m.GenAxioms, Common: m.CommonAxioms}
}

// LogicalAxioms returns the approximate logical axiom counts.
func (m *Metrics) LogicalAxioms() score.Overlap {
	return score.Overlap{Reference: m.RefLogicalAxioms, Generated: m.GenLogicalAxioms, Common: m.CommonLogicalAxioms}
}

// Result returns the headline ratios.
func (m *Metrics) Result() score.Result {
	return score.Result{
		Completeness: m.Completeness,
		Conciseness:  m.Conciseness,
		Correctness:  m.Correctness,
	}
}

// Row is one line of the detailed breakdown.
type Row struct {
	Name   string
	Counts score.Overlap
	Scores score.Result
}

// Breakdown returns counts and ratios per element category, then for axioms
// and logical axioms.
func (m *Metrics) Breakdown() []Row {
	rows := make([]Row, 0, len(ontology.Categories)+2)
	add := func(name string, o score.Overlap) {
		rows = append(rows, Row{Name: name, Counts: o, Scores: o.Result()})
	}
	for _, c := range ontology.Categories {
		add(c.String(), m.Overlap(c))
	}
	add("Axioms", m.Axioms())
	add("Logical Axioms", m.LogicalAxioms())
	return rows
}
