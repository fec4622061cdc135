package apply

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sebonomics/CodeFour/internal/lexicon"
	"github.com/sebonomics/CodeFour/internal/textdiff"
	"github.com/sebonomics/CodeFour/internal/types"
	"github.com/sebonomics/CodeFour/internal/voice"
)

// Result is the output of applying a rule set to one text
type Result struct {
	Text    string                 `json:"text"`
	Applied []types.AppliedPattern `json:"applied"`
}

// Applicator replays consolidated rules onto new text
type Applicator struct {
	lex                *lexicon.Lexicon
	logger             *log.Logger
	VoiceMinConfidence float64
}

// Option configures an Applicator
type Option func(*Applicator)

// WithLogger sets the logger used for skipped rules.
func WithLogger(logger *log.Logger) Option {
	return func(a *Applicator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithVoiceMinConfidence overrides the weakest voice preference that is applied.
func WithVoiceMinConfidence(threshold float64) Option {
	return func(a *Applicator) {
		a.VoiceMinConfidence = threshold
	}
}

// New creates an Applicator backed by lex.
func New(lex *lexicon.Lexicon, opts ...Option) *Applicator {
	a := &Applicator{
		lex:                lex,
		logger:             log.New(io.Discard, "", 0),
		VoiceMinConfidence: voice.MinConfidence,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ApplyStylePatterns applies rules to text at intensity and returns the new text.
func (a *Applicator) ApplyStylePatterns(text string, rules []types.StyleRule, intensity int) string {
	return a.ApplySupervisorStyle(text, rules, nil, intensity).Text
}

// ApplySupervisorStyle applies the voice preference (when present and
// eligible) and then every eligible, sufficiently confident rule in list
// order. Each rule runs once, left to right. Text inserted by an earlier
// replacement is never matched again by a later rule. Only rules that changed
// the text appear in Applied.
func (a *Applicator) ApplySupervisorStyle(text string, rules []types.StyleRule, pref *types.VoicePreference, intensity int) Result {
	res := Result{Text: text}

	if pref != nil && intensity >= VoiceTier && pref.Confidence >= a.VoiceMinConfidence {
		out, conversions := voice.RewriteSentences(a.lex, res.Text, pref.Direction)
		if len(conversions) > 0 {
			res.Text = out
			res.Applied = append(res.Applied, types.AppliedPattern{
				Rule:           pref.AsRule(),
				WasFound:       true,
				MatchPositions: conversionRecords(conversions),
				Reason:         "Voice patterns detected and converted in text",
			})
		}
	}

	var protected []span
	for _, rule := range rules {
		if !IsEligible(rule.Category, intensity) || !meetsConfidence(rule, intensity) {
			continue
		}

		edits, reason, err := a.editsFor(res.Text, rule, protected)
		if err != nil {
			a.logger.Printf("Warning: skipping %s rule %q: %v", rule.Category, rule.Pattern, err)
			continue
		}
		if len(edits) == 0 {
			continue
		}

		records := replacementsFor(res.Text, edits)
		if rule.Category.IsVoice() {
			// Rewritten sentences stay open to later word-level rules
			res.Text, _ = applyEdits(res.Text, edits, nil)
			protected = shiftOnly(protected, edits)
		} else {
			res.Text, protected = applyEdits(res.Text, edits, protected)
		}

		res.Applied = append(res.Applied, types.AppliedPattern{
			Rule:           rule,
			WasFound:       true,
			MatchPositions: records,
			Reason:         reason,
		})
	}

	return res
}

// editsFor computes the edits rule makes to text, skipping protected spans.
func (a *Applicator) editsFor(text string, rule types.StyleRule, protected []span) ([]edit, string, error) {
	switch payload := rule.Payload.(type) {
	case types.TimeFormatPayload:
		edits := unprotected(timeEdits(text, payload), protected)
		return edits, fmt.Sprintf("Converted %d time(s) to %s", len(edits), rule.Replacement), nil

	case types.VoicePayload:
		edits := a.voiceEdits(text, payload.Direction, protected)
		return edits, fmt.Sprintf("Rewrote %d sentence(s) toward %s voice", len(edits), payload.Direction), nil

	case types.SentenceLengthPayload, types.ConcisenessPayload:
		return nil, "", nil
	}

	if !rule.Literal() && (rule.Payload != nil || !literalCategory(rule.Category)) {
		return nil, "", fmt.Errorf("unsupported payload %T", rule.Payload)
	}

	m, err := literalPattern(rule.Pattern)
	if err != nil {
		return nil, "", err
	}
	edits := literalEdits(text, m, rule.Replacement, protected)
	return edits, fmt.Sprintf("Found %d instance(s) of %q in text", len(edits), rule.Pattern), nil
}

// literalCategory reports whether rules of category are plain text substitutions.
func literalCategory(category types.Category) bool {
	switch category {
	case types.CategoryTimeFormat, types.CategoryPassiveToActive, types.CategoryActiveToPassive,
		types.CategorySentenceLength, types.CategoryConciseness:
		return false
	}
	return true
}

func (a *Applicator) voiceEdits(text string, direction types.VoiceDirection, protected []span) []edit {
	var edits []edit
	for _, seg := range textdiff.SentenceSegments(text) {
		if overlapsAny(protected, seg.Start, seg.End) {
			continue
		}
		if rewritten, ok := voice.RewriteSentence(a.lex, seg.Body, direction); ok {
			edits = append(edits, edit{start: seg.Start, end: seg.End, text: rewritten})
		}
	}
	return edits
}

// literalMatcher finds case-insensitive whole-word occurrences of a pattern.
// Word boundaries are checked against Unicode letters and digits, since RE2's
// \b only recognizes ASCII word characters.
type literalMatcher struct {
	re         *regexp.Regexp
	checkStart bool
	checkEnd   bool
}

// literalPattern compiles a matcher for pattern. Runs of whitespace in
// pattern match any run of whitespace.
func literalPattern(pattern string) (*literalMatcher, error) {
	words := strings.Fields(pattern)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}

	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
	if err != nil {
		return nil, err
	}

	first, _ := utf8.DecodeRuneInString(words[0])
	last, _ := utf8.DecodeLastRuneInString(words[len(words)-1])
	return &literalMatcher{re: re, checkStart: isWordRune(first), checkEnd: isWordRune(last)}, nil
}

// findAll returns the byte ranges of non-overlapping whole-word matches in text.
func (m *literalMatcher) findAll(text string) [][2]int {
	var out [][2]int
	for offset := 0; offset < len(text); {
		loc := m.re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if m.bounded(text, start, end) {
			out = append(out, [2]int{start, end})
			offset = max(end, start+1)
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + max(size, 1)
	}
	return out
}

func (m *literalMatcher) bounded(text string, start, end int) bool {
	if m.checkStart && start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if m.checkEnd && end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// literalEdits replaces every unprotected match of m. Deletions also take
// one adjacent whitespace character so no double space is left behind.
func literalEdits(text string, m *literalMatcher, replacement string, protected []span) []edit {
	var edits []edit
	prevEnd := 0
	for _, loc := range m.findAll(text) {
		start, end := loc[0], loc[1]
		if overlapsAny(protected, start, end) {
			continue
		}

		if replacement == "" {
			switch {
			case end < len(text) && isSpace(text[end]) && !overlapsAny(protected, end, end+1):
				end++
			case start > prevEnd && isSpace(text[start-1]) && !overlapsAny(protected, start-1, start):
				start--
			}
		}

		edits = append(edits, edit{start: start, end: end, text: replacement})
		prevEnd = end
	}
	return edits
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func unprotected(edits []edit, protected []span) []edit {
	var out []edit
	for _, e := range edits {
		if !overlapsAny(protected, e.start, e.end) {
			out = append(out, e)
		}
	}
	return out
}

// shiftOnly moves protected spans past edits without protecting the edits themselves.
func shiftOnly(protected []span, edits []edit) []span {
	out := make([]span, 0, len(protected))
	for _, p := range protected {
		shift := 0
		for _, e := range edits {
			if e.end <= p.start {
				shift += len(e.text) - (e.end - e.start)
			}
		}
		out = append(out, span{start: p.start + shift, end: p.end + shift})
	}
	return out
}

func conversionRecords(conversions []voice.Conversion) []types.Replacement {
	out := make([]types.Replacement, len(conversions))
	for i, c := range conversions {
		out[i] = types.Replacement{Original: c.Original, Replacement: c.Rewritten, Position: c.Position}
	}
	return out
}
