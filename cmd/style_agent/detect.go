package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebonomics/CodeFour/internal/pipeline"
	"github.com/sebonomics/CodeFour/internal/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show the raw patterns between one original and edited text",
	Long:  "Runs the pattern detectors against a single original/edited pair and prints the raw, unconsolidated rules as JSON. With --all, phrase-change matching runs as well.",
	RunE:  runDetect,
}

var (
	detectOriginal string
	detectEdited   string
	detectAll      bool
)

func init() {
	detectCmd.Flags().StringVar(&detectOriginal, "original", "", "Path to original text file (required)")
	detectCmd.Flags().StringVar(&detectEdited, "edited", "", "Path to edited text file (required)")
	detectCmd.Flags().BoolVar(&detectAll, "all", false, "Include phrase-change matching")

	if err := detectCmd.MarkFlagRequired("original"); err != nil {
		panic(fmt.Sprintf("failed to mark original flag as required: %v", err))
	}
	if err := detectCmd.MarkFlagRequired("edited"); err != nil {
		panic(fmt.Sprintf("failed to mark edited flag as required: %v", err))
	}

	rootCmd.AddCommand(detectCmd)
}

func runDetect(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}

	original, err := os.ReadFile(detectOriginal)
	if err != nil {
		return fmt.Errorf("failed to read original file %s: %w", detectOriginal, err)
	}
	edited, err := os.ReadFile(detectEdited)
	if err != nil {
		return fmt.Errorf("failed to read edited file %s: %w", detectEdited, err)
	}

	engine := pipeline.NewEngine(lex, pipeline.Options{
		TaggerFactory:       taggerFactory(cfg),
		PhraseFloor:         cfg.PhraseSimilarityFloor,
		PhraseCeiling:       cfg.PhraseSimilarityCeiling,
		PhraseMinConfidence: cfg.PhraseMinConfidence,
		Logger:              newLogger(cfg),
	})

	var rules []types.StyleRule
	if detectAll {
		rules, err = engine.AnalyzeAllStylePatterns(context.Background(), string(original), string(edited))
		if err != nil {
			return fmt.Errorf("failed to analyze patterns: %w", err)
		}
	} else {
		rules = engine.DetectPatterns(string(original), string(edited))
	}
	if rules == nil {
		rules = []types.StyleRule{}
	}

	jsonOutput, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules to JSON: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, string(jsonOutput))
	return nil
}
