package apply

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sebonomics/CodeFour/internal/types"
)

var (
	clockTime       = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*([AP])M\b`)
	approxClockTime = regexp.MustCompile(`(?i)\bat\s*approximately\s*((\d{1,2}):(\d{2})\s*([AP])M\b)`)
)

// ConvertTimes rewrites 12-hour clock times in text to the 24-hour style in
// payload. Approximate payloads only touch times introduced by
// "at approximately". Invalid clock values are left alone.
func ConvertTimes(text string, payload types.TimeFormatPayload) (string, []types.Replacement) {
	edits := timeEdits(text, payload)
	if len(edits) == 0 {
		return text, nil
	}
	out, _ := applyEdits(text, edits, nil)
	return out, replacementsFor(text, edits)
}

func timeEdits(text string, payload types.TimeFormatPayload) []edit {
	var edits []edit

	if payload.Approximate {
		for _, m := range approxClockTime.FindAllStringSubmatchIndex(text, -1) {
			rendered, ok := render24(text[m[4]:m[5]], text[m[6]:m[7]], text[m[8]:m[9]], payload.Target)
			if !ok {
				continue
			}
			edits = append(edits, edit{start: m[2], end: m[3], text: rendered})
		}
		return edits
	}

	for _, m := range clockTime.FindAllStringSubmatchIndex(text, -1) {
		rendered, ok := render24(text[m[2]:m[3]], text[m[4]:m[5]], text[m[6]:m[7]], payload.Target)
		if !ok {
			continue
		}
		edits = append(edits, edit{start: m[0], end: m[1], text: rendered})
	}
	return edits
}

// render24 formats an hour/minute/meridiem triple as "1615 hours" or "16:15 hours".
func render24(hour, minute, meridiem string, target types.TimeFormat) (string, bool) {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 1 || h > 12 {
		return "", false
	}
	m, err := strconv.Atoi(minute)
	if err != nil || m > 59 {
		return "", false
	}

	h %= 12
	if strings.EqualFold(meridiem, "p") {
		h += 12
	}

	if target == types.TimeFormatColon {
		return fmt.Sprintf("%02d:%02d hours", h, m), true
	}
	return fmt.Sprintf("%02d%02d hours", h, m), true
}
