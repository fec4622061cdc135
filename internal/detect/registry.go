package detect

import (
	"fmt"

	"github.com/sebonomics/CodeFour/internal/types"
)

// Definition describes one detector in the registry
type Definition struct {
	Name       string
	Categories []types.Category
	Run        func(d *Detector, original, edited string) []types.StyleRule
}

// Registry lists every detector in the order their output is concatenated
var Registry = []Definition{
	{
		Name:       "word_replacements",
		Categories: []types.Category{types.CategoryWordReplacement, types.CategoryPhraseReplacement},
		Run:        (*Detector).DetectWordReplacements,
	},
	{
		Name:       "multi_word_replacements",
		Categories: []types.Category{types.CategoryMultiWordReplacement},
		Run:        (*Detector).DetectMultiWordReplacements,
	},
	{
		Name:       "tone_adjustments",
		Categories: []types.Category{types.CategoryToneAdjustment},
		Run:        (*Detector).DetectToneAdjustments,
	},
	{
		Name:       "redundant_words",
		Categories: []types.Category{types.CategoryRedundantWords},
		Run:        (*Detector).DetectRedundantWords,
	},
	{
		Name:       "active_passive_voice",
		Categories: []types.Category{types.CategoryPassiveToActive, types.CategoryActiveToPassive},
		Run:        (*Detector).DetectActivePassiveVoice,
	},
	{
		Name:       "time_formatting",
		Categories: []types.Category{types.CategoryTimeFormat},
		Run:        (*Detector).DetectTimeFormatting,
	},
	{
		Name:       "sentence_length",
		Categories: []types.Category{types.CategorySentenceLength},
		Run:        (*Detector).DetectSentenceLengthPreference,
	},
	{
		Name:       "conciseness",
		Categories: []types.Category{types.CategoryConciseness},
		Run:        (*Detector).DetectConciseness,
	},
}

// Lookup returns the registry entry with the given name.
func Lookup(name string) (Definition, bool) {
	for _, def := range Registry {
		if def.Name == name {
			return def, true
		}
	}
	return Definition{}, false
}

// Run executes defs against one pair. A detector that panics contributes no
// rules and is reported as a *Error; the remaining detectors still run.
func (d *Detector) Run(defs []Definition, original, edited string) ([]types.StyleRule, []error) {
	var rules []types.StyleRule
	var errs []error
	for _, def := range defs {
		out, err := d.runOne(def, original, edited)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, out...)
	}
	return rules, errs
}

func (d *Detector) runOne(def Definition, original, edited string) (rules []types.StyleRule, err error) {
	defer func() {
		if r := recover(); r != nil {
			rules = nil
			err = &Error{Detector: def.Name, Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	return def.Run(d, original, edited), nil
}

// RunAll executes every registered detector against one pair.
func (d *Detector) RunAll(original, edited string) ([]types.StyleRule, []error) {
	return d.Run(Registry, original, edited)
}

// DetectPatterns returns the concatenated output of every detector that succeeded.
func (d *Detector) DetectPatterns(original, edited string) []types.StyleRule {
	rules, _ := d.RunAll(original, edited)
	return rules
}
