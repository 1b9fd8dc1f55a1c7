// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine owns the live index and answers queries against it.
//
// Each Load builds a complete index off to the side and publishes it with a
// single atomic pointer swap. Readers always see either the old or the new
// index, never a partially built one, and need no locks.
package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pdiddy/faq-engine/internal/index"
	"github.com/pdiddy/faq-engine/internal/match"
	"github.com/pdiddy/faq-engine/internal/text"
	"github.com/pdiddy/faq-engine/pkg/types"
)

// ErrNotLoaded is returned when querying before the first successful Load.
var ErrNotLoaded = errors.New("knowledge base not loaded")

// Snapshot is one published index with where it came from.
type Snapshot struct {
	Index    *index.Index
	Source   string
	LoadedAt time.Time
}

// Engine matches queries against the current snapshot.
type Engine struct {
	tok     *text.Tokenizer
	matcher *match.Matcher
	current atomic.Pointer[Snapshot]
}

// New returns an Engine with no knowledge base loaded.
func New(cfg types.MatcherConfig) (*Engine, error) {
	tok, err := text.NewTokenizer(text.Options{
		StopWords: cfg.StopWords,
		NgramMin:  cfg.NgramMin,
		NgramMax:  cfg.NgramMax,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring tokenizer: %w", err)
	}
	return &Engine{tok: tok, matcher: match.New(cfg)}, nil
}

// Load indexes entries and publishes the result. On error the previously
// published snapshot stays live.
func (e *Engine) Load(entries []types.Entry, source string) error {
	idx, err := index.Build(entries, e.tok)
	if err != nil {
		return fmt.Errorf("indexing %s: %w", source, err)
	}
	e.current.Store(&Snapshot{Index: idx, Source: source, LoadedAt: time.Now()})
	return nil
}

// Snapshot returns the published snapshot, or nil before the first Load.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Threshold returns the matcher's confidence threshold.
func (e *Engine) Threshold() float64 {
	return e.matcher.Threshold()
}

// Match answers query from the current snapshot.
func (e *Engine) Match(query string) (match.Result, error) {
	snap := e.current.Load()
	if snap == nil {
		return match.Result{}, ErrNotLoaded
	}
	return e.matcher.Match(query, snap.Index)
}

// Rank returns the k best-scoring entries for query.
func (e *Engine) Rank(query string, k int) ([]match.Scored, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return e.matcher.Rank(query, snap.Index, k)
}
