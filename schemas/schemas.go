// Package schemas embeds the JSON Schemas for the files the CLI reads and writes.
package schemas

import _ "embed"

// Reports is the schema for a reports input file
//
//go:embed reports.schema.json
var Reports string

// StyleRules is the schema for a trained rule-set file
//
//go:embed style_rules.schema.json
var StyleRules string
