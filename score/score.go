// Package score implements the set-overlap quality ratios used to compare a
// generated (learned) ontology L against a reference ontology R.
//
//	conciseness  = |L ∩ R| / |L|
//	completeness = |L ∩ R| / |R|
//	correctness  = harmonic mean of the two
//
// Every ratio is 0 when its denominator is 0, so results are always in [0, 1].
package score

// Overlap holds the sizes needed to compute the ratios: the size of the
// reference set, of the generated set and of their intersection.
type Overlap struct {
	Reference int
	Generated int
	Common    int
}

// Compare counts the overlap of a generated set l and a reference set r.
func Compare[T comparable](l, r Set[T]) Overlap {
	return Overlap{
		Reference: r.Len(),
		Generated: l.Len(),
		Common:    l.Intersect(r).Len(),
	}
}

// Conciseness is the share of generated elements that are in the reference.
func (o Overlap) Conciseness() float64 {
	return ratio(o.Common, o.Generated)
}

// Completeness is the share of reference elements that were generated.
func (o Overlap) Completeness() float64 {
	return ratio(o.Common, o.Reference)
}

// Correctness is the harmonic mean of conciseness and completeness.
func (o Overlap) Correctness() float64 {
	return harmonic(o.Conciseness(), o.Completeness())
}

// Result computes all three ratios at once.
func (o Overlap) Result() Result {
	conc, comp := o.Conciseness(), o.Completeness()
	return Result{
		Completeness: comp,
		Conciseness:  conc,
		Correctness:  harmonic(conc, comp),
	}
}

// Result is a set of quality ratios, each in [0, 1].
type Result struct {
	Completeness float64 `json:"completeness"`
	Conciseness  float64 `json:"conciseness"`
	Correctness  float64 `json:"correctness"`
}

// Conciseness is |L ∩ R| / |L|, or 0 when L is empty.
func Conciseness[T comparable](l, r Set[T]) float64 {
	return Compare(l, r).Conciseness()
}

// Completeness is |L ∩ R| / |R|, or 0 when R is empty.
func Completeness[T comparable](l, r Set[T]) float64 {
	return Compare(l, r).Completeness()
}

// Correctness is the harmonic mean of Conciseness and Completeness, or 0 when both are 0.
func Correctness[T comparable](l, r Set[T]) float64 {
	return Compare(l, r).Correctness()
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	// Hand-built overlaps may be inconsistent; keep the result in [0, 1].
	switch {
	case n <= 0:
		return 0
	case n >= d:
		return 1
	}
	return float64(n) / float64(d)
}

func harmonic(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}
