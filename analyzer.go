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

// Package csec holds the central scanning logic: a file-oriented static
// defect scanner whose rules flag the classic planted defects of C-family
// sources. An empty result set means "no issues detected by the enabled
// rules", never "file is safe".
package csec

import (
	"fmt"
	"log"
	"os"

	"github.com/securec/csec/issue"
)

// Synthetic rule ids attached to a scan result when the scan itself, not
// the scanned code, misbehaves.
const (
	// RuleError reports a rule whose matcher malfunctioned internally
	RuleError = "RULE_ERROR"
	// RuleInvalidInput reports a buffer that could not be decoded as text
	RuleInvalidInput = "INVALID_INPUT"
)

// Metrics used when reporting information about a scanning run.
type Metrics struct {
	NumFiles int `json:"files"`
	NumLines int `json:"lines"`
	NumFound int `json:"found"`
}

// Analyzer object is the main object of csec. It applies every registered
// rule to one source buffer at a time and aggregates the findings. An
// Analyzer owns no shared mutable state beyond its registered rule set, so
// scanning files in parallel means one Analyzer per worker sharing the same
// rule values.
type Analyzer struct {
	ruleset RuleSet
	config  Config
	logger  *log.Logger
	issues  []*issue.Issue
	errors  map[string][]Error
	stats   *Metrics
}

// NewAnalyzer builds a new analyzer.
func NewAnalyzer(conf Config, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(os.Stderr, "[csec] ", log.LstdFlags)
	}
	return &Analyzer{
		ruleset: make(RuleSet, 0, 16),
		config:  conf,
		logger:  logger,
		issues:  make([]*issue.Issue, 0, 16),
		errors:  make(map[string][]Error),
		stats:   &Metrics{},
	}
}

// LoadRules instantiates all the rules to be used when analyzing source
// buffers, in registry order.
func (c *Analyzer) LoadRules(ruleDefinitions ...RuleBuilder) {
	for _, builder := range ruleDefinitions {
		c.ruleset = c.ruleset.Register(builder(c.config))
	}
}

// Scan analyzes a single buffer under its logical path. Findings accumulate
// on the analyzer until Reset is called. An undecodable buffer aborts the
// scan of that file with ErrInvalidInput and leaves one synthetic finding;
// it is not fatal to a multi-file run.
func (c *Analyzer) Scan(path string, raw []byte) error {
	c.stats.NumFiles++

	source, err := NewSourceBuffer(path, raw)
	if err != nil {
		c.logger.Printf("Skipping %s: %v\n", path, err)
		c.errors[path] = append(c.errors[path], *NewError(1, 1, err.Error()))
		c.issues = append(c.issues, issue.New(path, 1, 1, 0, RuleInvalidInput,
			"input could not be decoded as text", issue.CatQuality, issue.Medium, issue.High))
		c.stats.NumFound++
		return err
	}

	ctx := NewContext(source, c.config)
	sink := newFindingSink()

	for order, rule := range c.ruleset {
		found, err := c.runRule(rule, ctx)
		if err != nil {
			c.logger.Printf("Rule error: %s => %v (%s)\n", rule.ID(), err, path)
			c.errors[path] = append(c.errors[path], *NewError(1, 1, err.Error()))
			sink.Add(order, issue.New(path, 1, 1, 0, RuleError,
				fmt.Sprintf("rule %s failed and was isolated: %v", rule.ID(), err),
				issue.CatQuality, issue.Low, issue.High))
			continue
		}
		for _, iss := range found {
			sink.Add(order, iss)
		}
	}

	collected := sink.Collect()
	c.issues = append(c.issues, collected...)
	c.stats.NumLines += source.NumLines()
	c.stats.NumFound += len(collected)
	return nil
}

// runRule isolates a single rule: a panicking matcher is converted into an
// error and its partial output discarded, so the remaining rules still run.
func (c *Analyzer) runRule(rule Rule, ctx *Context) (found []*issue.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			found = nil
			err = fmt.Errorf("matcher panic: %v", r)
		}
	}()
	return rule.Match(ctx)
}

// Report returns the current issues discovered and the metrics about the scan
func (c *Analyzer) Report() ([]*issue.Issue, *Metrics) {
	return c.issues, c.stats
}

// Errors returns the scan errors recorded per logical path, sorted by
// position.
func (c *Analyzer) Errors() map[string][]Error {
	sortErrors(c.errors)
	return c.errors
}

// Reset clears state such as issues, errors and metrics from the configured
// analyzer. The registered rules are kept.
func (c *Analyzer) Reset() {
	c.issues = make([]*issue.Issue, 0, 16)
	c.errors = make(map[string][]Error)
	c.stats = &Metrics{}
}
