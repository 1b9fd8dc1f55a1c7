// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match finds the knowledge base entry closest to a free-text query.
//
// A query is vectorized in the index's space and compared to every entry by
// cosine similarity. The best entry is reported as Matched when its score
// reaches the confidence threshold, otherwise the outcome is NoMatch with the
// best score kept for diagnostics. NoMatch is an outcome, not an error.
package match

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/faq-engine/internal/index"
	"github.com/pdiddy/faq-engine/pkg/types"
)

// ErrInvalidQuery reports structurally invalid input: text that is not
// valid UTF-8, or no index to match against. Empty text is not invalid.
var ErrInvalidQuery = errors.New("invalid query")

// Outcome tags a Result.
type Outcome int

const (
	NoMatch Outcome = iota
	Matched
)

func (o Outcome) String() string {
	if o == Matched {
		return "matched"
	}
	return "no_match"
}

// MarshalText encodes o as its String form.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result is the outcome of matching one query. Answer, Entry and Position
// are set only when Outcome is Matched; Score is always the best similarity
// seen (0 when the query had no recognized terms).
type Result struct {
	Outcome  Outcome     `json:"outcome"`
	Answer   string      `json:"answer,omitempty"`
	Score    float64     `json:"score"`
	Position int         `json:"position"`
	Entry    types.Entry `json:"-"`
}

// Matched reports whether r carries an answer.
func (r Result) Matched() bool { return r.Outcome == Matched }

// Scored pairs an entry position with its similarity to a query.
type Scored struct {
	Position int         `json:"position"`
	Score    float64     `json:"score"`
	Entry    types.Entry `json:"entry"`
}

// Matcher scores queries against an index. It holds only immutable
// configuration and is safe for concurrent use.
type Matcher struct {
	threshold float64
}

// New returns a Matcher for cfg. A zero threshold is honored as zero; use
// types.DefaultMatcherConfig for the default.
func New(cfg types.MatcherConfig) *Matcher {
	return &Matcher{threshold: cfg.ConfidenceThreshold}
}

// Threshold returns the minimum similarity reported as Matched.
func (m *Matcher) Threshold() float64 { return m.threshold }

// Match returns the best entry for query. Ties go to the lowest position.
func (m *Matcher) Match(query string, idx *index.Index) (Result, error) {
	q, err := vectorize(query, idx)
	if err != nil {
		return Result{}, err
	}
	noMatch := Result{Outcome: NoMatch, Position: -1}
	if q.IsZero() {
		return noMatch, nil
	}

	best, bestScore := -1, 0.0
	for i := 0; i < idx.Len(); i++ {
		v := idx.Vector(i)
		if v.IsZero() {
			continue
		}
		s := index.Dot(q, v)
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}

	if best < 0 || bestScore < m.threshold {
		noMatch.Score = bestScore
		return noMatch, nil
	}
	e := idx.Entry(best)
	return Result{
		Outcome:  Matched,
		Answer:   e.Answer,
		Score:    bestScore,
		Position: best,
		Entry:    e,
	}, nil
}

// Rank returns up to k entries ordered by descending similarity to query,
// lower positions first on ties. Entries scoring zero are omitted. The
// threshold does not apply; k <= 0 returns every scoring entry.
func (m *Matcher) Rank(query string, idx *index.Index, k int) ([]Scored, error) {
	q, err := vectorize(query, idx)
	if err != nil {
		return nil, err
	}
	if q.IsZero() {
		return nil, nil
	}

	var scored []Scored
	for i := 0; i < idx.Len(); i++ {
		if s := index.Dot(q, idx.Vector(i)); s > 0 {
			scored = append(scored, Scored{Position: i, Score: s, Entry: idx.Entry(i)})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// vectorize validates query and maps it into idx's space. Blank queries
// yield the zero vector.
func vectorize(query string, idx *index.Index) (index.Vector, error) {
	if idx == nil {
		return index.Vector{}, fmt.Errorf("%w: no index", ErrInvalidQuery)
	}
	if !utf8.ValidString(query) {
		return index.Vector{}, fmt.Errorf("%w: query is not valid UTF-8 text", ErrInvalidQuery)
	}
	if strings.TrimSpace(query) == "" {
		return index.Vector{}, nil
	}
	return idx.Vectorize(query), nil
}
