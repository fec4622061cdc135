package types

// SpanKind tags a diff span
type SpanKind string

const (
	SpanAdded     SpanKind = "added"
	SpanRemoved   SpanKind = "removed"
	SpanUnchanged SpanKind = "unchanged"
)

// TextSpan is a contiguous run of text tagged by the diff adapter
type TextSpan struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// PhraseChange is a removed phrase paired with the added phrase that replaced it
type PhraseChange struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Confidence float64 `json:"confidence"`
	Similarity float64 `json:"similarity"`
}

// PhraseFrequency is one entry of the phrase-change frequency store
type PhraseFrequency struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Count      int     `json:"count"`
	Confidence float64 `json:"confidence"`
}

// Replacement is a single substitution made while applying a rule
type Replacement struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Position    int    `json:"position"`
}

// AppliedPattern is the audit record for a rule that matched and changed the text
type AppliedPattern struct {
	Rule           StyleRule     `json:"rule"`
	WasFound       bool          `json:"was_found"`
	MatchPositions []Replacement `json:"match_positions"`
	Reason         string        `json:"reason"`
}
