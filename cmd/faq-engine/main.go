// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the faq-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/faq-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Configuration keys. Flags bound to these keys override the config file
// and FAQ_ENGINE_* environment variables.
const (
	keyThreshold = "matcher.confidence_threshold"
	keyStopWords = "matcher.stop_words"
	keyNgramMin  = "matcher.ngram_min"
	keyNgramMax  = "matcher.ngram_max"
	keyKBDir     = "knowledge_base.dir"
	keyKBFile    = "knowledge_base.file"
)

// rootCmd is the base command for the faq-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "faq-engine",
	Short: "Answer free-text questions from a FAQ knowledge base",
	Long: `faq-engine matches a free-text question against a fixed set of FAQ
entries using TF-IDF vectors and cosine similarity. The best entry is
answered when its similarity reaches the confidence threshold; otherwise the
user is asked to rephrase.

Entries come from a YAML knowledge file (--file), from the SQLite store
built by "kb ingest" (--from-store), or from the built-in FAQ.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultMatcherConfig()
	viper.SetDefault(keyThreshold, defaults.ConfidenceThreshold)
	viper.SetDefault(keyNgramMin, defaults.NgramMin)
	viper.SetDefault(keyNgramMax, defaults.NgramMax)
	viper.SetDefault(keyKBDir, "knowledge")

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./faq-engine.yaml or ~/.config/faq-engine/config.yaml)")
	flags.Float64("threshold", defaults.ConfidenceThreshold, "minimum cosine similarity reported as a match")
	flags.String("file", "", "YAML knowledge file to answer from")
	flags.String("knowledge-dir", "knowledge", "base directory for the knowledge store (contains entries/, index/)")

	viper.BindPFlag(keyThreshold, flags.Lookup("threshold"))
	viper.BindPFlag(keyKBFile, flags.Lookup("file"))
	viper.BindPFlag(keyKBDir, flags.Lookup("knowledge-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("faq-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "faq-engine"))
		}
	}

	viper.SetEnvPrefix("FAQ_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
