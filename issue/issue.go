// (c) Copyright 2016 Hewlett Packard Enterprise Development LP
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package issue defines the finding record emitted by csec rules.
package issue

import (
	"encoding/json"
	"fmt"

	"github.com/securec/csec/cwe"
)

// Score type used by severity and confidence values
type Score int

const (
	// Low severity or confidence
	Low Score = iota
	// Medium severity or confidence
	Medium
	// High severity or confidence
	High
)

// Category classifies a rule as a security or a code-quality concern.
type Category int

const (
	// CatSecurity marks findings with a direct security impact
	CatSecurity Category = iota
	// CatQuality marks findings that are code-quality defects
	CatQuality
)

// RuleToCWE maps csec rule ids to CWE identifiers
var RuleToCWE = map[string]string{
	"HARDCODED_SECRET":      "798",
	"UNSAFE_GETS":           "242",
	"UNSAFE_STRCPY":         "120",
	"UNSAFE_STRCAT":         "120",
	"UNSAFE_SPRINTF":        "120",
	"FORMATTED_QUERY":       "89",
	"COMMAND_EXECUTION":     "78",
	"UNCHECKED_DIVISION":    "369",
	"POSSIBLE_MEMORY_LEAK":  "401",
	"UNINITIALIZED_READ":    "457",
	"DEBUG_PRINT":           "489",
	"TODO_COMMENT":          "546",
	"TEST_LEFTOVER_COMMENT": "546",
	"SECRET_EXPOSURE":       "200",
}

// Issue is returned by a csec rule if it discovers an issue with the scanned code.
type Issue struct {
	RuleID     string        `json:"rule_id" yaml:"rule_id"`     // rule identifier, e.g. UNSAFE_GETS
	Category   Category      `json:"category" yaml:"category"`   // security or quality
	Severity   Score         `json:"severity" yaml:"severity"`   // issue severity (how problematic it is)
	Confidence Score         `json:"confidence" yaml:"confidence"` // issue confidence (how sure we are we found it)
	Cwe        *cwe.Weakness `json:"cwe,omitempty" yaml:"cwe,omitempty"`
	Path       string        `json:"path" yaml:"path"`       // logical path of the scanned buffer
	Line       int           `json:"line" yaml:"line"`       // line number, 1-based
	Col        int           `json:"column" yaml:"column"`   // column number, 1-based, byte-indexed
	Length     int           `json:"length" yaml:"length"`   // matched span length in bytes
	What       string        `json:"message" yaml:"message"` // human readable explanation
	Code       string        `json:"code,omitempty" yaml:"code,omitempty"` // impacted source line
}

// FileLocation points out the path, line and column of the issue
func (i *Issue) FileLocation() string {
	return fmt.Sprintf("%s:%d:%d", i.Path, i.Line, i.Col)
}

// MetaData is embedded in all csec rules. The Category, Severity, Confidence
// and What message are passed through to reported issues.
type MetaData struct {
	ID         string
	Category   Category
	Severity   Score
	Confidence Score
	What       string
}

// NewMetaData builds the metadata record shared by every rule.
func NewMetaData(id, what string, category Category, severity, confidence Score) MetaData {
	return MetaData{
		ID:         id,
		Category:   category,
		Severity:   severity,
		Confidence: confidence,
		What:       what,
	}
}

// New creates a new Issue at the given buffer position.
func New(path string, line, col, length int, ruleID, what string, category Category, severity, confidence Score) *Issue {
	issue := &Issue{
		RuleID:     ruleID,
		Category:   category,
		Severity:   severity,
		Confidence: confidence,
		Path:       path,
		Line:       line,
		Col:        col,
		Length:     length,
		What:       what,
	}
	if id, ok := RuleToCWE[ruleID]; ok {
		issue.Cwe = cwe.Get(id)
	}
	return issue
}

// WithCode attaches the impacted source line to the issue.
func (i *Issue) WithCode(code string) *Issue {
	i.Code = code
	return i
}

// MarshalJSON is used convert a Score object into a JSON representation
func (c Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// String converts a Score into a string
func (c Score) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	}
	return "undefined"
}

// MarshalJSON is used convert a Category object into a JSON representation
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// String converts a Category into a string
func (c Category) String() string {
	switch c {
	case CatSecurity:
		return "security"
	case CatQuality:
		return "quality"
	}
	return "undefined"
}
