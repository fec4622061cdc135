package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Report is one document the user has (possibly) edited
type Report struct {
	ID           int    `json:"id" validate:"gte=0"`
	Title        string `json:"title"`
	OriginalText string `json:"original_text" validate:"required"`
	EditedText   string `json:"edited_text"`
	IsEdited     bool   `json:"is_edited"`
}

// Validate validates the Report using the validator.
func (r *Report) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Trainable reports whether the report carries a real edit worth learning from.
func (r Report) Trainable() bool {
	if !r.IsEdited {
		return false
	}
	edited := strings.TrimSpace(r.EditedText)
	return edited != "" && edited != strings.TrimSpace(r.OriginalText)
}

// TrainableReports filters reports down to those with real edits, preserving order.
func TrainableReports(reports []Report) []Report {
	var out []Report
	for _, r := range reports {
		if r.Trainable() {
			out = append(out, r)
		}
	}
	return out
}

// ApplyRequest is the input to a single apply call
type ApplyRequest struct {
	Text      string `json:"text" validate:"required"`
	Intensity int    `json:"intensity" validate:"min=0,max=100"`
}

// Validate validates the ApplyRequest using the validator.
func (r *ApplyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
