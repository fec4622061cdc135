// Package lexicon provides the versioned heuristic tables that drive style detection and voice rewriting.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/sebonomics/CodeFour/internal/types"
)

//go:embed lexicon.yaml
var defaultTables []byte

// verbsPlaceholder expands to the passive_verbs alternation inside table regexes
const verbsPlaceholder = "{{verbs}}"

// TermPair is an informal term and its formal counterpart
type TermPair struct {
	Informal string `yaml:"informal" validate:"required"`
	Formal   string `yaml:"formal" validate:"required"`
}

// WeightedPattern is one entry of the passive-voice battery
type WeightedPattern struct {
	Pattern string  `yaml:"pattern" validate:"required"`
	Weight  float64 `yaml:"weight" validate:"gt=0"`
}

// TransformPattern is a known domain transformation expressed as a regex pair
type TransformPattern struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

// VoiceRewrite is a sentence rewrite producing Direction voice
type VoiceRewrite struct {
	Direction types.VoiceDirection `yaml:"direction" validate:"oneof=active passive"`
	Pattern   string               `yaml:"pattern" validate:"required"`
	Template  string               `yaml:"template" validate:"required"`
}

// Tables is the raw YAML shape of the lexicon
type Tables struct {
	Version               string             `yaml:"version" validate:"required"`
	InformalToFormal      []TermPair         `yaml:"informal_to_formal" validate:"dive"`
	InformalModifiers     []string           `yaml:"informal_modifiers"`
	RedundantWords        []string           `yaml:"redundant_words"`
	RedundantPhrases      []string           `yaml:"redundant_phrases"`
	PassiveThreshold      float64            `yaml:"passive_threshold" validate:"gt=0"`
	PassivePatterns       []WeightedPattern  `yaml:"passive_patterns" validate:"min=1,dive"`
	PassiveVerbs          []string           `yaml:"passive_verbs" validate:"min=1,dive,required"`
	ActiveIndicators      []string           `yaml:"active_indicators"`
	VoiceRewrites         []VoiceRewrite     `yaml:"voice_rewrites" validate:"dive"`
	DomainTransformations []TransformPattern `yaml:"domain_transformations" validate:"dive"`
	BannedWords           []string           `yaml:"banned_words"`
	Stopwords             []string           `yaml:"stopwords"`
}

type compiledPattern struct {
	re     *regexp.Regexp
	weight float64
}

type compiledTransform struct {
	from *regexp.Regexp
	to   *regexp.Regexp
}

// CompiledRewrite is a VoiceRewrite with its pattern compiled
type CompiledRewrite struct {
	Direction types.VoiceDirection
	Pattern   *regexp.Regexp
	Template  string
}

// Lexicon is a validated, compiled set of heuristic tables.
// A Lexicon is immutable after construction and safe for concurrent use.
type Lexicon struct {
	Tables

	informalToFormal []compiledTerm
	passive          []compiledPattern
	active           []*regexp.Regexp
	transforms       []compiledTransform
	rewrites         []CompiledRewrite
	banned           map[string]bool
	stopwords        map[string]bool
	modifiers        map[string]bool
}

type compiledTerm struct {
	TermPair
	informal *regexp.Regexp
	formal   *regexp.Regexp
}

// Default returns the lexicon built from the embedded tables.
func Default() *Lexicon {
	lex, err := Load(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadFile reads a YAML lexicon from path.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("failed to read lexicon file %s", path), Cause: err}
	}
	return Load(data)
}

// Load parses, validates and compiles YAML lexicon tables.
func Load(data []byte) (*Lexicon, error) {
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, &LoadError{Message: "failed to parse lexicon YAML", Cause: err}
	}

	validate := validator.New()
	if err := validate.Struct(&tables); err != nil {
		return nil, &LoadError{Message: "lexicon failed validation", Cause: err}
	}

	return compile(tables)
}

func compile(t Tables) (*Lexicon, error) {
	lex := &Lexicon{
		Tables:    t,
		banned:    toSet(t.BannedWords),
		stopwords: toSet(t.Stopwords),
		modifiers: toSet(t.InformalModifiers),
	}

	verbs := make([]string, len(t.PassiveVerbs))
	for i, v := range t.PassiveVerbs {
		verbs[i] = regexp.QuoteMeta(strings.ToLower(v))
	}
	expand := func(pattern string) string {
		return strings.ReplaceAll(pattern, verbsPlaceholder, strings.Join(verbs, "|"))
	}

	for _, pair := range t.InformalToFormal {
		informal, err := wordBoundary(pair.Informal)
		if err != nil {
			return nil, err
		}
		formal, err := wordBoundary(pair.Formal)
		if err != nil {
			return nil, err
		}
		lex.informalToFormal = append(lex.informalToFormal, compiledTerm{TermPair: pair, informal: informal, formal: formal})
	}

	for _, p := range t.PassivePatterns {
		re, err := compileTable("passive_patterns", "(?i)"+expand(p.Pattern))
		if err != nil {
			return nil, err
		}
		lex.passive = append(lex.passive, compiledPattern{re: re, weight: p.Weight})
	}

	for _, p := range t.ActiveIndicators {
		re, err := compileTable("active_indicators", "(?i)"+expand(p))
		if err != nil {
			return nil, err
		}
		lex.active = append(lex.active, re)
	}

	for _, tr := range t.DomainTransformations {
		from, err := compileTable("domain_transformations", "(?i)"+tr.From)
		if err != nil {
			return nil, err
		}
		to, err := compileTable("domain_transformations", "(?i)"+tr.To)
		if err != nil {
			return nil, err
		}
		lex.transforms = append(lex.transforms, compiledTransform{from: from, to: to})
	}

	for _, rw := range t.VoiceRewrites {
		re, err := compileTable("voice_rewrites", "(?is)"+expand(rw.Pattern))
		if err != nil {
			return nil, err
		}
		lex.rewrites = append(lex.rewrites, CompiledRewrite{Direction: rw.Direction, Pattern: re, Template: rw.Template})
	}

	return lex, nil
}

func compileTable(table, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &LoadError{Message: fmt.Sprintf("invalid regex in %s: %q", table, pattern), Cause: err}
	}
	return re, nil
}

// wordBoundary compiles a case-insensitive whole-word matcher for a literal term.
func wordBoundary(term string) (*regexp.Regexp, error) {
	return compileTable("informal_to_formal", `(?i)\b`+regexp.QuoteMeta(term)+`\b`)
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}
