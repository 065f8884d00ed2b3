// Copyright 2014 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph holds an in-memory, deduplicated set of RDF triples with
// per-direction indexes for simple pattern matching.
package graph

import (
	"errors"

	"github.com/cayleygraph/quad"
)

var (
	ErrQuadExists  = errors.New("quad exists")
	ErrInvalidQuad = errors.New("invalid quad")
)

// directions indexed by the graph; labels are not kept.
var directions = [...]quad.Direction{quad.Subject, quad.Predicate, quad.Object}

// Key is the raw identity of a triple: the N-Quads encoding of its terms.
type Key [3]string

// KeyOf returns the raw identity of q, ignoring its label.
func KeyOf(q quad.Quad) Key {
	return Key{valueKey(q.Subject), valueKey(q.Predicate), valueKey(q.Object)}
}

func valueKey(v quad.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Graph is a set of triples. The zero value is not usable; call New.
//
// Graph is not safe for concurrent writes, but it is never modified after
// loading, so concurrent reads are fine.
type Graph struct {
	idMap    map[string]int64
	revIDMap map[int64]quad.Value
	nextID   int64

	quads []quad.Quad
	seen  map[[3]int64]struct{}
	index [len(directions)]map[int64][]int
}

// New returns a graph holding the given quads. Duplicates and invalid quads are skipped.
func New(quads ...quad.Quad) *Graph {
	g := &Graph{
		idMap:    make(map[string]int64),
		revIDMap: make(map[int64]quad.Value),
		nextID:   1,
		seen:     make(map[[3]int64]struct{}),
	}
	for i := range g.index {
		g.index[i] = make(map[int64][]int)
	}
	for _, q := range quads {
		_ = g.AddQuad(q)
	}
	return g
}

func (g *Graph) intern(v quad.Value) int64 {
	k := valueKey(v)
	if id, ok := g.idMap[k]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.idMap[k] = id
	g.revIDMap[id] = v
	return id
}

// AddQuad adds the triple part of q. It returns ErrQuadExists if the triple
// is already in the graph and ErrInvalidQuad if a term is missing.
func (g *Graph) AddQuad(q quad.Quad) error {
	if !q.IsValid() {
		return ErrInvalidQuad
	}
	q.Label = nil
	var ids [3]int64
	for i, d := range directions {
		ids[i] = g.intern(q.Get(d))
	}
	if _, ok := g.seen[ids]; ok {
		return ErrQuadExists
	}
	g.seen[ids] = struct{}{}
	n := len(g.quads)
	g.quads = append(g.quads, q)
	for i := range directions {
		g.index[i][ids[i]] = append(g.index[i][ids[i]], n)
	}
	return nil
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.quads) }

// Quads returns all triples in insertion order.
func (g *Graph) Quads() []quad.Quad {
	out := make([]quad.Quad, len(g.quads))
	copy(out, g.quads)
	return out
}

// Keys returns the raw identities of all triples.
func (g *Graph) Keys() []Key {
	out := make([]Key, 0, len(g.quads))
	for _, q := range g.quads {
		out = append(out, KeyOf(q))
	}
	return out
}

// Match returns the triples matching the pattern. A nil term matches anything.
func (g *Graph) Match(s, p, o quad.Value) []quad.Quad {
	pattern := [len(directions)]quad.Value{s, p, o}

	// Start from the shortest posting list among the bound terms.
	var (
		list  []int
		bound bool
		ids   [len(directions)]int64
	)
	for i, v := range pattern {
		if v == nil {
			continue
		}
		id, ok := g.idMap[valueKey(v)]
		if !ok {
			// Never seen this term, so nothing can match.
			return nil
		}
		ids[i] = id
		l := g.index[i][id]
		if !bound || len(l) < len(list) {
			list, bound = l, true
		}
	}
	if !bound {
		return g.Quads()
	}

	var out []quad.Quad
	for _, n := range list {
		q := g.quads[n]
		if g.matches(q, ids) {
			out = append(out, q)
		}
	}
	return out
}

func (g *Graph) matches(q quad.Quad, ids [len(directions)]int64) bool {
	for i, d := range directions {
		if ids[i] == 0 {
			continue
		}
		if g.idMap[valueKey(q.Get(d))] != ids[i] {
			return false
		}
	}
	return true
}

// Subjects returns the distinct subjects of triples matching (?, p, o), in
// the order they were first added.
func (g *Graph) Subjects(p, o quad.Value) []quad.Value {
	var (
		out  []quad.Value
		seen = make(map[int64]struct{})
	)
	for _, q := range g.Match(nil, p, o) {
		id := g.idMap[valueKey(q.Subject)]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, g.revIDMap[id])
	}
	return out
}
