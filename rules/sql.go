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

package rules

import (
	"regexp"
	"strings"

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

type formattedQuery struct {
	issue.MetaData
	formatCall *regexp.Regexp
	sqlVerb    *regexp.Regexp
}

func (r *formattedQuery) ID() string {
	return r.MetaData.ID
}

// Match flags format-print calls whose literal argument is a SQL statement
// interpolating input through %s. The call site is located on the masked
// code view; the literal is then read back from the lexical segmentation of
// the same statement. The finding is anchored at the literal.
func (r *formattedQuery) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, m := range r.formatCall.FindAllSubmatchIndex(code, -1) {
		start := m[2]
		if start > 0 {
			prev := code[start-1]
			if isWordByte(prev) || prev == '.' || prev == '>' {
				continue
			}
		}
		end := statementEnd(code, start)
		for _, literal := range stringLiteralsIn(ctx, start, end) {
			content := literalContent(ctx, literal)
			if !strings.Contains(content, "%s") {
				continue
			}
			if !csec.RegexMatchWithCache(r.sqlVerb, content) {
				continue
			}
			issues = append(issues, ctx.NewIssue(literal.Start, literal.End-literal.Start,
				r.ID(), r.What, r.Category, r.Severity, r.Confidence))
			break
		}
	}
	return issues, nil
}

// NewFormattedQuery detects query strings built by formatted interpolation
// of input.
func NewFormattedQuery(id string, _ csec.Config) csec.Rule {
	return &formattedQuery{
		MetaData: issue.NewMetaData(id,
			"SQL query construction using format string interpolation of input",
			issue.CatSecurity, issue.High, issue.High),
		formatCall: regexp.MustCompile(`(sprintf|snprintf|vsprintf|fprintf|printf|format)\(`),
		sqlVerb:    regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b`),
	}
}
