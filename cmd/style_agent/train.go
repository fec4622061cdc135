package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sebonomics/CodeFour/internal/observability"
	"github.com/sebonomics/CodeFour/internal/pipeline"
	"github.com/sebonomics/CodeFour/internal/schemas"
	"github.com/sebonomics/CodeFour/internal/types"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Learn style rules from edited reports",
	Long:  "Analyzes every edited report in a reports JSON file, consolidates the detected patterns into confidence-scored rules, and writes a StyleRuleSet JSON.",
	RunE:  runTrain,
}

var (
	trainReports string
	trainOutput  string
	trainWorkers int
)

func init() {
	trainCmd.Flags().StringVarP(&trainReports, "reports", "r", "", "Path to input reports JSON file (required)")
	trainCmd.Flags().StringVarP(&trainOutput, "out", "o", "", "Path to output StyleRuleSet JSON file (required)")
	trainCmd.Flags().IntVarP(&trainWorkers, "workers", "w", 0, "Reports analyzed concurrently (overrides config)")

	if err := trainCmd.MarkFlagRequired("reports"); err != nil {
		panic(fmt.Sprintf("failed to mark reports flag as required: %v", err))
	}
	if err := trainCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(trainCmd)
}

func runTrain(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if trainWorkers > 0 {
		cfg.Workers = trainWorkers
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}

	// 1. Load and validate reports
	content, err := os.ReadFile(trainReports)
	if err != nil {
		return fmt.Errorf("failed to read reports file %s: %w", trainReports, err)
	}
	if err := schemas.ValidateReports(content); err != nil {
		return fmt.Errorf("reports file %s is invalid: %w", trainReports, err)
	}

	var reports []types.Report
	if err := json.Unmarshal(content, &reports); err != nil {
		return fmt.Errorf("failed to unmarshal reports JSON: %w", err)
	}

	// 2. Train
	opts := pipeline.Options{
		Workers:             cfg.Workers,
		TaggerFactory:       taggerFactory(cfg),
		PhraseFloor:         cfg.PhraseSimilarityFloor,
		PhraseCeiling:       cfg.PhraseSimilarityCeiling,
		PhraseMinConfidence: cfg.PhraseMinConfidence,
		Logger:              newLogger(cfg),
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			if event.ReportID != 0 {
				_, _ = fmt.Fprintf(os.Stderr, "[%s] report %d: %s\n", event.Step, event.ReportID, event.Message)
				return
			}
			_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := pipeline.NewEngine(lex, opts).Train(ctx, reports)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	// 3. Write rule set
	jsonOutput, err := json.MarshalIndent(result.RuleSet(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rule set to JSON: %w", err)
	}

	outputDir := filepath.Dir(trainOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(trainOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write rule set to output file %s: %w", trainOutput, err)
	}

	// Output validation is a safety check, not a requirement
	if err := schemas.ValidateRuleSet(jsonOutput); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}

	for _, failure := range result.Failures {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %v\n", failure)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintTrainingSummary(result)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Successfully learned %d rules from %d reports to %s\n",
		len(result.Rules), result.ReportsAnalyzed, trainOutput)

	return nil
}
