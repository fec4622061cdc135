// Package phrases provides multi-word phrase extraction with a part-of-speech strategy and a regex fallback.
package phrases

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// POS is a coarse part-of-speech class
type POS string

const (
	POSAdjective   POS = "ADJ"
	POSNoun        POS = "NOUN"
	POSVerb        POS = "VERB"
	POSAdverb      POS = "ADV"
	POSPreposition POS = "PREP"
	POSPunctuation POS = "PUNCT"
	POSOther       POS = "X"
)

// TaggedToken is a token with its coarse part of speech
type TaggedToken struct {
	Text string
	POS  POS
}

// Tagging is the output of a POSTagger for one text
type Tagging struct {
	Tokens   []TaggedToken
	Entities []string
}

// POSTagger tags text with parts of speech and, when supported, named entities
type POSTagger interface {
	Tag(text string) (*Tagging, error)
}

// TaggerFactory builds a POSTagger; it is called at most once per Extractor
type TaggerFactory func() (POSTagger, error)

// ProseTagger tags text with the prose averaged-perceptron model.
// The model is loaded once and shared by every Tag call.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger loads the prose model by tagging a warm-up sentence.
func NewProseTagger() (POSTagger, error) {
	warm, err := prose.NewDocument("The officer observed the vehicle.")
	if err != nil {
		return nil, err
	}
	if warm.Model == nil {
		return nil, fmt.Errorf("prose returned no model")
	}
	return &ProseTagger{model: warm.Model}, nil
}

// Tag implements POSTagger.
func (p *ProseTagger) Tag(text string) (*Tagging, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(p.model))
	if err != nil {
		return nil, err
	}

	tagging := &Tagging{}
	for _, tok := range doc.Tokens() {
		tagging.Tokens = append(tagging.Tokens, TaggedToken{Text: tok.Text, POS: fromPenn(tok.Tag, tok.Text)})
	}
	for _, ent := range doc.Entities() {
		tagging.Entities = append(tagging.Entities, ent.Text)
	}
	return tagging, nil
}

// fromPenn maps a Penn Treebank tag to a coarse class.
func fromPenn(tag, text string) POS {
	switch {
	case strings.HasPrefix(tag, "JJ"):
		return POSAdjective
	case strings.HasPrefix(tag, "NN"):
		return POSNoun
	case strings.HasPrefix(tag, "VB"):
		return POSVerb
	case strings.HasPrefix(tag, "RB"):
		return POSAdverb
	case tag == "IN" || tag == "TO":
		return POSPreposition
	}
	if isPunctuation(text) {
		return POSPunctuation
	}
	return POSOther
}

func isPunctuation(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
