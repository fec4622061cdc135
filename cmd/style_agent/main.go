// Package main provides the entry point for the style_agent CLI.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sebonomics/CodeFour/internal/config"
	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/phrases"
)

var rootCmd = &cobra.Command{
	Use:   "style_agent",
	Short: "Learn and apply supervisor editing style",
	Long:  "style_agent learns a supervisor's edit preferences from before/after report pairs, consolidates them into confidence-scored rules, and applies them to new drafts at a chosen intensity.",
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("STYLE_AGENT_CONFIG"), "Path to JSON config file (env STYLE_AGENT_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed progress and summaries")
}

// loadConfig returns the built-in defaults overlaid with the --config file, if any.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadLexicon returns the configured lexicon, falling back to the built-in tables.
func loadLexicon(cfg config.Config) (*lexicon.Lexicon, error) {
	if cfg.LexiconPath == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.LoadFile(cfg.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lex, nil
}

// taggerFactory returns nil when the linguistic tagger is disabled.
func taggerFactory(cfg config.Config) phrases.TaggerFactory {
	if cfg.DisableTagger {
		return nil
	}
	return phrases.NewProseTagger
}

// newLogger writes warnings to stderr in verbose mode and discards them otherwise.
func newLogger(cfg config.Config) *log.Logger {
	if cfg.Verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
