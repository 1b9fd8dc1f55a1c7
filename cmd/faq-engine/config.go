// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/faq-engine/internal/engine"
	"github.com/pdiddy/faq-engine/internal/knowledge"
	"github.com/pdiddy/faq-engine/pkg/types"
)

func matcherConfig() types.MatcherConfig {
	return types.MatcherConfig{
		ConfidenceThreshold: viper.GetFloat64(keyThreshold),
		StopWords:           viper.GetStringSlice(keyStopWords),
		NgramMin:            viper.GetInt(keyNgramMin),
		NgramMax:            viper.GetInt(keyNgramMax),
	}
}

func knowledgeBaseConfig() types.KnowledgeBaseConfig {
	return types.KnowledgeBaseConfig{
		Dir:  viper.GetString(keyKBDir),
		File: viper.GetString(keyKBFile),
	}
}

// loadEntries picks the entry source: the knowledge file when set, the
// store when fromStore is set, otherwise the built-in FAQ.
func loadEntries(ctx context.Context, cfg types.KnowledgeBaseConfig, fromStore bool) ([]types.Entry, string, error) {
	if cfg.File != "" {
		entries, err := knowledge.LoadFile(cfg.File)
		if err != nil {
			return nil, "", err
		}
		return entries, cfg.File, nil
	}

	if fromStore {
		store, err := knowledge.NewStore(cfg)
		if err != nil {
			return nil, "", err
		}
		defer store.Close()

		entries, err := store.Entries(ctx)
		if err != nil {
			return nil, "", err
		}
		if len(entries) == 0 {
			return nil, "", fmt.Errorf("knowledge store in %s is empty: run \"faq-engine kb ingest\" first", cfg.Dir)
		}
		return entries, "store", nil
	}

	return knowledge.Defaults(), "builtin", nil
}

// newLoadedEngine builds an engine from configuration and loads its entries.
func newLoadedEngine(ctx context.Context, fromStore bool) (*engine.Engine, types.KnowledgeBaseConfig, error) {
	kbCfg := knowledgeBaseConfig()
	e, err := engine.New(matcherConfig())
	if err != nil {
		return nil, kbCfg, err
	}
	entries, source, err := loadEntries(ctx, kbCfg, fromStore)
	if err != nil {
		return nil, kbCfg, err
	}
	if err := e.Load(entries, source); err != nil {
		return nil, kbCfg, err
	}
	return e, kbCfg, nil
}
