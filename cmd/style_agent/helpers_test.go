package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const toneReportsJSON = `[
	{"id": 1, "title": "Theft", "original_text": "I talked to the guy", "edited_text": "I interviewed the subject", "is_edited": true},
	{"id": 2, "title": "Theft", "original_text": "I talked to the guy", "edited_text": "I interviewed the subject", "is_edited": true},
	{"id": 3, "title": "Draft", "original_text": "Nothing changed here", "is_edited": false}
]`

// resetFlags restores every command's flag variables to their defaults and
// points the config at a file that disables the POS tagger.
func resetFlags(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	configPath = writeTestFile(t, dir, "config.json", `{"disable_linguistic_tagger": true}`)
	verbose = false

	trainReports, trainOutput, trainWorkers = "", "", 0
	applyRules, applyInput, applyOutput, applyAudit, applyIntensity = "", "", "", "", -1
	detectOriginal, detectEdited, detectAll = "", "", false
	validateJSON, validateKind, validateSchema = "", "reports", ""

	return dir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
