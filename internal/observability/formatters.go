// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sebonomics/CodeFour/internal/pipeline"
	"github.com/sebonomics/CodeFour/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintTrainingSummary outputs the counts of a training session and its strongest rules.
func (p *Printer) PrintTrainingSummary(result *pipeline.TrainingResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session:  %s\n", result.SessionID))
	sb.WriteString(fmt.Sprintf("Reports:  %d analyzed, %d skipped\n", result.ReportsAnalyzed, result.ReportsSkipped))
	sb.WriteString(fmt.Sprintf("Rules:    %d raw -> %d consolidated\n", result.RawRuleCount, len(result.Rules)))
	if len(result.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("Failures: %d\n", len(result.Failures)))
		count := min(len(result.Failures), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  ! %s\n", result.Failures[i].Error()))
		}
	}

	if len(result.FrequentPhrases) > 0 {
		sb.WriteString("\nFrequent phrase changes:\n")
		count := min(len(result.FrequentPhrases), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := result.FrequentPhrases[i]
			sb.WriteString(fmt.Sprintf("  • %q -> %q (x%d)\n", f.From, f.To, f.Count))
		}
	}

	p.printBox("TRAINING SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintStyleRules(result.Rules)
	p.PrintVoicePreference(&result.Voice)
}

// PrintStyleRules outputs the top rules with category and confidence.
func (p *Printer) PrintStyleRules(rules []types.StyleRule) {
	if len(rules) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total rules: %d\n\n", len(rules)))

	count := min(len(rules), maxItemsToShow)
	for i := 0; i < count; i++ {
		rule := rules[i]
		sb.WriteString(fmt.Sprintf("#%d  [%s] %.2f\n", i+1, rule.Category, rule.Confidence))
		sb.WriteString(fmt.Sprintf("    %q -> %q\n", rule.Pattern, rule.Replacement))
	}

	if len(rules) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more rules", len(rules)-maxItemsToShow))
	}

	p.printBox("STYLE RULES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVoicePreference outputs the learned voice direction. A preference with
// no observed flips prints nothing.
func (p *Printer) PrintVoicePreference(pref *types.VoicePreference) {
	if pref == nil || pref.Flips() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Direction:  %s\n", pref.Direction))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", pref.Confidence))
	sb.WriteString(fmt.Sprintf("Passive -> active: %d\n", pref.PassiveToActiveCount))
	sb.WriteString(fmt.Sprintf("Active -> passive: %d\n", pref.ActiveToPassiveCount))
	sb.WriteString(fmt.Sprintf("Sentences analyzed: %d", pref.SentencesAnalyzed))

	p.printBox("VOICE PREFERENCE", sb.String())
}

// PrintAppliedPatterns outputs the audit trail of an apply run.
func (p *Printer) PrintAppliedPatterns(applied []types.AppliedPattern) {
	if len(applied) == 0 {
		p.printBox("APPLIED PATTERNS", "No patterns applied")
		return
	}

	var sb strings.Builder
	for i, a := range applied {
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", a.Rule.Category, a.Reason))
		count := min(len(a.MatchPositions), 3)
		for j := 0; j < count; j++ {
			m := a.MatchPositions[j]
			sb.WriteString(fmt.Sprintf("    @%d %q -> %q\n", m.Position, m.Original, m.Replacement))
		}
		if len(a.MatchPositions) > count {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(a.MatchPositions)-count))
		}
		if i == maxItemsToShow-1 && len(applied) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more patterns\n", len(applied)-maxItemsToShow))
			break
		}
	}

	p.printBox("APPLIED PATTERNS", strings.TrimSuffix(sb.String(), "\n"))
}
