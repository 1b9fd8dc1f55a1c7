// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the TF-IDF vector space over knowledge base questions.
//
// Build tokenizes every question, assigns each distinct term a column in a
// sorted Vocabulary, weights terms by tf × idf with
// idf(t) = ln((1+N)/(1+df(t))) + 1, and stores one L2-normalized Vector per
// entry. An Index is read-only once built and safe for concurrent readers.
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/faq-engine/internal/text"
	"github.com/pdiddy/faq-engine/pkg/types"
)

// ErrInvalidKnowledgeBase reports entries that cannot be indexed.
var ErrInvalidKnowledgeBase = errors.New("invalid knowledge base")

// Vocabulary maps terms to vector columns. Columns follow sorted term order.
type Vocabulary struct {
	terms []string
	cols  map[string]int
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Column returns the column assigned to term.
func (v *Vocabulary) Column(term string) (int, bool) {
	c, ok := v.cols[term]
	return c, ok
}

// Term returns the term at column col.
func (v *Vocabulary) Term(col int) string { return v.terms[col] }

// Terms returns a copy of all terms in column order.
func (v *Vocabulary) Terms() []string {
	return append([]string(nil), v.terms...)
}

// Index holds the entries, their vocabulary, idf weights, and unit vectors.
type Index struct {
	tok     *text.Tokenizer
	entries []types.Entry
	vocab   *Vocabulary
	idf     []float64
	vectors []Vector
}

// Build indexes entries with tok. It fails with ErrInvalidKnowledgeBase when
// entries is empty, a question is blank, or no question yields any term. A
// question made up only of stop-words is kept with a zero Vector and can
// never be matched.
func Build(entries []types.Entry, tok *text.Tokenizer) (*Index, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: no tokenizer", ErrInvalidKnowledgeBase)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidKnowledgeBase)
	}

	// Term counts per entry, and document frequency per term.
	counts := make([]map[string]int, len(entries))
	df := make(map[string]int)
	for i, e := range entries {
		if strings.TrimSpace(e.Question) == "" {
			return nil, fmt.Errorf("%w: entry %d has an empty question", ErrInvalidKnowledgeBase, i)
		}
		terms := tok.Terms(e.Question)
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}
		for t := range tf {
			df[t]++
		}
		counts[i] = tf
	}

	if len(df) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary, every question is made up of stop-words", ErrInvalidKnowledgeBase)
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocab := &Vocabulary{terms: terms, cols: make(map[string]int, len(terms))}
	n := float64(len(entries))
	idf := make([]float64, len(terms))
	for col, t := range terms {
		vocab.cols[t] = col
		idf[col] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	idx := &Index{
		tok:     tok,
		entries: append([]types.Entry(nil), entries...),
		vocab:   vocab,
		idf:     idf,
		vectors: make([]Vector, len(entries)),
	}
	for i, tf := range counts {
		idx.vectors[i] = idx.weigh(tf)
	}
	return idx, nil
}

// weigh turns term counts into a unit tf-idf vector. Terms outside the
// vocabulary are dropped.
func (x *Index) weigh(tf map[string]int) Vector {
	cols := make([]int, 0, len(tf))
	for t := range tf {
		if c, ok := x.vocab.cols[t]; ok {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)

	v := Vector{Cols: cols, Weights: make([]float64, len(cols))}
	for i, c := range cols {
		v.Weights[i] = float64(tf[x.vocab.terms[c]]) * x.idf[c]
	}
	return v.normalized()
}

// Vectorize maps s into the index's vector space with the same tokenizer
// and idf weights used at build time. The result is unit length, or the
// zero vector when s contains no vocabulary term.
func (x *Index) Vectorize(s string) Vector {
	terms := x.tok.Terms(s)
	if len(terms) == 0 {
		return Vector{}
	}
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		tf[t]++
	}
	return x.weigh(tf)
}

// Len returns the number of indexed entries.
func (x *Index) Len() int { return len(x.entries) }

// Entry returns the entry at position i.
func (x *Index) Entry(i int) types.Entry { return x.entries[i] }

// Entries returns a copy of the indexed entries in original order.
func (x *Index) Entries() []types.Entry {
	return append([]types.Entry(nil), x.entries...)
}

// Vector returns the unit vector of the entry at position i.
func (x *Index) Vector(i int) Vector { return x.vectors[i] }

// Vocabulary returns the term-to-column mapping.
func (x *Index) Vocabulary() *Vocabulary { return x.vocab }

// IDF returns the inverse document frequency of term, or 0 when the term is
// not in the vocabulary.
func (x *Index) IDF(term string) float64 {
	if c, ok := x.vocab.cols[term]; ok {
		return x.idf[c]
	}
	return 0
}

// Tokenizer returns the tokenizer the index was built with.
func (x *Index) Tokenizer() *text.Tokenizer { return x.tok }
