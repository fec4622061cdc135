package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sebonomics/CodeFour/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long:  "Validates a reports or rule-set JSON file against the built-in schema for its kind, or against an explicit schema file.",
	RunE:  runValidate,
}

var (
	validateJSON   string
	validateKind   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to JSON file to validate (required)")
	validateCmd.Flags().StringVar(&validateKind, "kind", "reports", "Built-in schema to use: reports or rules")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a schema file (overrides --kind)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	} else {
		var content []byte
		content, err = os.ReadFile(validateJSON)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", validateJSON, err)
		}
		switch validateKind {
		case "reports":
			err = schemas.ValidateReports(content)
		case "rules":
			err = schemas.ValidateRuleSet(content)
		default:
			return fmt.Errorf("unknown schema kind %q (want reports or rules)", validateKind)
		}
	}

	if err != nil {
		return fmt.Errorf("%s: %w", validateJSON, err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSON)
	return nil
}
