// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package text turns free text into the terms the index and matcher share.
// Both sides must tokenize with the same Tokenizer value, otherwise query
// vectors and entry vectors live in different spaces.
package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// wordRe matches runs of letters, digits, and underscores.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Options configures a Tokenizer. Zero values select the defaults.
type Options struct {
	// StopWords replaces EnglishStopWords when non-empty.
	StopWords []string

	// NgramMin and NgramMax bound the n-gram lengths emitted by Terms.
	NgramMin int
	NgramMax int
}

// Tokenizer normalizes text and extracts n-gram terms. It is immutable
// after construction and safe for concurrent use.
type Tokenizer struct {
	stop     map[string]struct{}
	ngramMin int
	ngramMax int
}

// NewTokenizer returns a Tokenizer for opts. Stop-words are normalized with
// the same rules as input text so "Whén" in a custom list still filters "when".
func NewTokenizer(opts Options) (*Tokenizer, error) {
	minN, maxN := opts.NgramMin, opts.NgramMax
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 2
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("invalid n-gram range (%d, %d)", minN, maxN)
	}

	words := opts.StopWords
	if len(words) == 0 {
		words = EnglishStopWords
	}
	stop := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(Normalize(w)); w != "" {
			stop[w] = struct{}{}
		}
	}

	return &Tokenizer{stop: stop, ngramMin: minN, ngramMax: maxN}, nil
}

// NgramRange returns the configured minimum and maximum n-gram lengths.
func (t *Tokenizer) NgramRange() (int, int) {
	return t.ngramMin, t.ngramMax
}

// IsStopWord reports whether the normalized form of w is excluded.
func (t *Tokenizer) IsStopWord(w string) bool {
	_, ok := t.stop[Normalize(w)]
	return ok
}

// Normalize lowercases s and strips diacritics: "Café" becomes "cafe".
func Normalize(s string) string {
	s = strings.ToLower(s)
	tr := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(tr, s)
	if err != nil {
		return s
	}
	return out
}

// Words returns the normalized words of s in text order. Single-character
// tokens and stop-words are dropped.
func (t *Tokenizer) Words(s string) []string {
	raw := wordRe.FindAllString(Normalize(s), -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if utf8.RuneCountInString(w) < 2 {
			continue
		}
		if _, isStop := t.stop[w]; isStop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Terms returns every n-gram of Words(s) within the configured range,
// shorter n-grams first, each group in text order. Words of an n-gram are
// joined by a single space.
//
// Example with (1,2): "Do you ship internationally?" yields
// ["ship", "internationally", "ship internationally"].
func (t *Tokenizer) Terms(s string) []string {
	words := t.Words(s)
	if len(words) == 0 {
		return nil
	}

	var terms []string
	for n := t.ngramMin; n <= t.ngramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			if n == 1 {
				terms = append(terms, words[i])
				continue
			}
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}
