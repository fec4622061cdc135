// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults used when neither the config file nor a flag sets a value
const (
	DefaultIntensity               = 50
	DefaultWorkers                 = 4
	DefaultPhraseSimilarityFloor   = 0.3
	DefaultPhraseSimilarityCeiling = 0.8
	DefaultPhraseMinConfidence     = 0.5
	DefaultVoiceMinConfidence      = 0.3
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; unset fields are filled by MergeWithDefaults.
type Config struct {
	// Apply
	Intensity *int `json:"intensity,omitempty" validate:"omitempty,min=0,max=100"` // Rule application intensity (0-100); nil selects the default, 0 disables every rule

	// Training
	Workers             int    `json:"workers,omitempty" validate:"min=0,max=64"` // Reports processed concurrently
	LexiconPath         string `json:"lexicon_path,omitempty"`                    // YAML file replacing the built-in heuristic tables
	DisableTagger       bool   `json:"disable_linguistic_tagger,omitempty"`       // Extract phrases with n-grams only, never loading the POS tagger

	// Phrase matching
	PhraseSimilarityFloor   *float64 `json:"phrase_similarity_floor,omitempty" validate:"omitempty,min=0,max=1"`           // Below this, phrases are unrelated; nil selects the default
	PhraseSimilarityCeiling float64  `json:"phrase_similarity_ceiling,omitempty" validate:"omitempty,min=0,max=1"`         // At or above this, phrases are unchanged; must exceed the floor
	PhraseMinConfidence     float64  `json:"phrase_min_confidence,omitempty" validate:"min=0,max=1"`                       // Weakest phrase change promoted to a rule

	// Voice
	VoiceMinConfidence float64 `json:"voice_min_confidence,omitempty" validate:"min=0,max=1"` // Weakest voice preference that is applied

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Intensity:               intPtr(DefaultIntensity),
		Workers:                 DefaultWorkers,
		PhraseSimilarityFloor:   floatPtr(DefaultPhraseSimilarityFloor),
		PhraseSimilarityCeiling: DefaultPhraseSimilarityCeiling,
		PhraseMinConfidence:     DefaultPhraseMinConfidence,
		VoiceMinConfidence:      DefaultVoiceMinConfidence,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation", jsonName(fe.StructField()), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.PhraseSimilarityCeiling > 0 && c.PhraseSimilarityFloor != nil && c.PhraseSimilarityCeiling <= *c.PhraseSimilarityFloor {
		return fmt.Errorf("config error: 'phrase_similarity_ceiling' failed 'gtfield' validation")
	}

	// Validate file paths exist (if specified)
	if c.LexiconPath != "" {
		if _, err := os.Stat(c.LexiconPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: lexicon file not found: %s", c.LexiconPath)
		}
	}

	return nil
}

// jsonName maps a struct field to its JSON key for error messages.
func jsonName(field string) string {
	names := map[string]string{
		"Intensity":               "intensity",
		"Workers":                 "workers",
		"PhraseSimilarityFloor":   "phrase_similarity_floor",
		"PhraseSimilarityCeiling": "phrase_similarity_ceiling",
		"PhraseMinConfidence":     "phrase_min_confidence",
		"VoiceMinConfidence":      "voice_min_confidence",
	}
	if name, ok := names[field]; ok {
		return name
	}
	return field
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.LexiconPath == "" {
		result.LexiconPath = defaults.LexiconPath
	}

	// Pointer fields: use default if unset, so an explicit zero survives
	if result.Intensity == nil && defaults.Intensity != nil {
		result.Intensity = intPtr(*defaults.Intensity)
	}
	if result.PhraseSimilarityFloor == nil && defaults.PhraseSimilarityFloor != nil {
		result.PhraseSimilarityFloor = floatPtr(*defaults.PhraseSimilarityFloor)
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Float fields
	if result.PhraseSimilarityCeiling == 0 {
		result.PhraseSimilarityCeiling = defaults.PhraseSimilarityCeiling
	}
	if result.PhraseMinConfidence == 0 {
		result.PhraseMinConfidence = defaults.PhraseMinConfidence
	}
	if result.VoiceMinConfidence == 0 {
		result.VoiceMinConfidence = defaults.VoiceMinConfidence
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// IntensityOrDefault returns the configured intensity, or DefaultIntensity when unset.
func (c *Config) IntensityOrDefault() int {
	if c.Intensity == nil {
		return DefaultIntensity
	}
	return *c.Intensity
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
