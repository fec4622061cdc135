package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sebonomics/CodeFour/internal/apply"
	"github.com/sebonomics/CodeFour/internal/observability"
	"github.com/sebonomics/CodeFour/internal/schemas"
	"github.com/sebonomics/CodeFour/internal/types"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply learned style rules to a draft",
	Long:  "Rewrites a plain-text draft using the rules in a StyleRuleSet JSON. Intensity (0-100) selects which rule categories are eligible and the minimum confidence a rule needs.",
	RunE:  runApply,
}

var (
	applyRules     string
	applyInput     string
	applyOutput    string
	applyAudit     string
	applyIntensity int
)

func init() {
	applyCmd.Flags().StringVarP(&applyRules, "rules", "r", "", "Path to input StyleRuleSet JSON file (required)")
	applyCmd.Flags().StringVarP(&applyInput, "in", "i", "", "Path to input draft text file (required)")
	applyCmd.Flags().StringVarP(&applyOutput, "out", "o", "", "Path to output text file (default stdout)")
	applyCmd.Flags().StringVar(&applyAudit, "audit", "", "Path to output applied-patterns JSON file")
	applyCmd.Flags().IntVarP(&applyIntensity, "intensity", "n", -1, "Application intensity 0-100 (overrides config)")

	if err := applyCmd.MarkFlagRequired("rules"); err != nil {
		panic(fmt.Sprintf("failed to mark rules flag as required: %v", err))
	}
	if err := applyCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(applyCmd)
}

func runApply(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lex, err := loadLexicon(cfg)
	if err != nil {
		return err
	}

	// 1. Load rule set
	rulesContent, err := os.ReadFile(applyRules)
	if err != nil {
		return fmt.Errorf("failed to read rules file %s: %w", applyRules, err)
	}
	if err := schemas.ValidateRuleSet(rulesContent); err != nil {
		return fmt.Errorf("rules file %s is invalid: %w", applyRules, err)
	}

	var ruleSet types.StyleRuleSet
	if err := json.Unmarshal(rulesContent, &ruleSet); err != nil {
		return fmt.Errorf("failed to unmarshal rule set JSON: %w", err)
	}

	// 2. Load draft
	draft, err := os.ReadFile(applyInput)
	if err != nil {
		return fmt.Errorf("failed to read draft file %s: %w", applyInput, err)
	}

	req := types.ApplyRequest{Text: string(draft), Intensity: cfg.IntensityOrDefault()}
	if applyIntensity >= 0 {
		req.Intensity = applyIntensity
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid apply request: %w", err)
	}

	// 3. Apply
	applicator := apply.New(lex,
		apply.WithLogger(newLogger(cfg)),
		apply.WithVoiceMinConfidence(cfg.VoiceMinConfidence),
	)
	result := applicator.ApplySupervisorStyle(req.Text, ruleSet.Rules, ruleSet.Voice, req.Intensity)

	// 4. Write outputs
	if applyOutput == "" {
		_, _ = fmt.Fprint(os.Stdout, result.Text)
	} else if err := writeFile(applyOutput, []byte(result.Text)); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", applyOutput, err)
	}

	if applyAudit != "" {
		applied := result.Applied
		if applied == nil {
			applied = []types.AppliedPattern{}
		}
		auditJSON, err := json.MarshalIndent(applied, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal applied patterns to JSON: %w", err)
		}
		if err := writeFile(applyAudit, auditJSON); err != nil {
			return fmt.Errorf("failed to write audit file %s: %w", applyAudit, err)
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintAppliedPatterns(result.Applied)
	}

	return nil
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
