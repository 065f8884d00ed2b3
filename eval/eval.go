// Package eval compares a generated ontology against a reference ontology and
// produces a single metrics record.
package eval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cayleygraph/ontoeval/clog"
	"github.com/cayleygraph/ontoeval/graph"
	"github.com/cayleygraph/ontoeval/internal/load"
	"github.com/cayleygraph/ontoeval/ontology"
	"github.com/cayleygraph/ontoeval/score"
	"github.com/cayleygraph/ontoeval/term"
)

// Source is one ontology document, given as a path or as content.
type Source = load.Source

const (
	SideReference = "reference"
	SideGenerated = "generated"
)

// Mode selects which comparison the headline ratios of a record come from.
type Mode int

const (
	// ModeElements scores the pooled union of classes, properties and
	// individuals, compared by exact term.
	ModeElements Mode = iota
	// ModeTriples scores all triples after term normalization. It is a quick
	// overlap check that also counts facts about individuals.
	ModeTriples
)

var ErrUnknownMode = errors.New("unknown scoring mode")

var modeNames = map[Mode]string{
	ModeElements: "elements",
	ModeTriples:  "triples",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name. Empty selects ModeElements.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeElements, nil
	}
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Evaluator loads pairs of ontologies and scores them. It keeps no state
// between calls and is safe for concurrent use.
type Evaluator struct {
	loader *load.Loader
	mode   Mode
}

type Option func(*Evaluator)

// WithMode sets the default scoring mode.
func WithMode(m Mode) Option {
	return func(e *Evaluator) { e.mode = m }
}

// New returns an evaluator that reads both ontologies through loader.
// A nil loader reads from the OS filesystem.
func New(loader *load.Loader, opts ...Option) *Evaluator {
	if loader == nil {
		loader = load.New()
	}
	e := &Evaluator{loader: loader}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the default scoring mode.
func (e *Evaluator) Mode() Mode { return e.mode }

// Evaluate scores gen against ref using the default mode.
func (e *Evaluator) Evaluate(ctx context.Context, ref, gen Source) (*Metrics, error) {
	return e.EvaluateMode(ctx, ref, gen, e.mode)
}

// EvaluateMode scores gen against ref. Both sources must be set. A parse
// failure on either side aborts the evaluation with a *load.ParseError that
// names the side.
func (e *Evaluator) EvaluateMode(ctx context.Context, ref, gen Source, mode Mode) (*Metrics, error) {
	if _, ok := modeNames[mode]; !ok {
		return nil, fmt.Errorf("%w %v", ErrUnknownMode, mode)
	}
	start := time.Now()
	m, err := e.evaluate(ctx, ref, gen, mode)
	if err != nil {
		mEvaluations.WithLabelValues(mode.String(), "error").Inc()
		return nil, err
	}
	mEvaluations.WithLabelValues(mode.String(), "ok").Inc()
	mEvalSeconds.Observe(time.Since(start).Seconds())
	mCorrectness.WithLabelValues(mode.String()).Observe(m.Correctness)
	if clog.V(1) {
		clog.Infof("evaluated in %v (%s): completeness=%.3f conciseness=%.3f correctness=%.3f",
			time.Since(start), mode, m.Completeness, m.Conciseness, m.Correctness)
	}
	return m, nil
}

func (e *Evaluator) evaluate(ctx context.Context, ref, gen Source, mode Mode) (*Metrics, error) {
	rg, err := e.load(ctx, SideReference, ref)
	if err != nil {
		return nil, err
	}
	gg, err := e.load(ctx, SideGenerated, gen)
	if err != nil {
		return nil, err
	}
	return Compare(rg, gg, mode), nil
}

func (e *Evaluator) load(ctx context.Context, side string, src Source) (*graph.Graph, error) {
	if !src.IsSet() {
		return nil, fmt.Errorf("%s ontology: %w", side, load.ErrNoSource)
	}
	g, err := e.loader.Load(ctx, src)
	if err == nil {
		return g, nil
	}
	var perr *load.ParseError
	if errors.As(err, &perr) {
		perr.Side = side
		mParseErrors.WithLabelValues(side).Inc()
		return nil, perr
	}
	return nil, fmt.Errorf("%s ontology: %w", side, err)
}

// Compare scores the generated graph gen against the reference graph ref.
// Element and axiom counts are always filled in; mode selects the source of
// the three ratios.
func Compare(ref, gen *graph.Graph, mode Mode) *Metrics {
	re, ge := ontology.Extract(ref), ontology.Extract(gen)

	m := &Metrics{Mode: mode}
	m.setOverlap(ontology.Classes, score.Compare(ge.Classes, re.Classes))
	m.setOverlap(ontology.ObjectProperties, score.Compare(ge.ObjectProperties, re.ObjectProperties))
	m.setOverlap(ontology.DatatypeProperties, score.Compare(ge.DatatypeProperties, re.DatatypeProperties))
	m.setOverlap(ontology.Individuals, score.Compare(ge.Individuals, re.Individuals))

	axioms := score.Compare(ontology.AxiomSet(gen), ontology.AxiomSet(ref))
	m.RefAxioms, m.GenAxioms, m.CommonAxioms = axioms.Reference, axioms.Generated, axioms.Common

	// Shared declarations are shared triples, so the same heuristic applies
	// to the common counts.
	m.RefLogicalAxioms = re.LogicalAxioms()
	m.GenLogicalAxioms = ge.LogicalAxioms()
	m.CommonLogicalAxioms = ontology.LogicalAxioms(m.CommonAxioms,
		m.CommonClasses+m.CommonObjProps+m.CommonDataProps)

	var res score.Result
	switch mode {
	case ModeTriples:
		res = score.Compare(term.NormalizeGraph(gen), term.NormalizeGraph(ref)).Result()
	default:
		res = score.Compare(ge.All(), re.All()).Result()
	}
	m.Completeness, m.Conciseness, m.Correctness = res.Completeness, res.Conciseness, res.Correctness
	return m
}
