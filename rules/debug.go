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

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

// outputPrimitive matches both call-style output (printf and friends) and
// stream-style output (cout <<).
const outputPrimitive = `\b(printf|fprintf|puts|print|println|cout|cerr|clog)\b`

type debugPrint struct {
	issue.MetaData
	output *regexp.Regexp
	marker *regexp.Regexp
}

func (r *debugPrint) ID() string {
	return r.MetaData.ID
}

// Match flags output statements whose literal argument mentions debug. The
// output primitive must sit in plain code; the literal content comes from
// the lexical segmentation of the statement. The finding is anchored at the
// primitive.
func (r *debugPrint) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, m := range r.output.FindAllSubmatchIndex(code, -1) {
		start := m[2]
		if start > 0 {
			prev := code[start-1]
			if isWordByte(prev) || prev == '.' || prev == '>' {
				continue
			}
		}
		end := statementEnd(code, start)
		for _, literal := range stringLiteralsIn(ctx, start, end) {
			if !csec.RegexMatchWithCache(r.marker, literalContent(ctx, literal)) {
				continue
			}
			issues = append(issues, ctx.NewIssue(start, m[3]-m[2], r.ID(), r.What, r.Category, r.Severity, r.Confidence))
			break
		}
	}
	return issues, nil
}

// NewDebugPrint detects freeform debug output left in source.
func NewDebugPrint(id string, _ csec.Config) csec.Rule {
	return &debugPrint{
		MetaData: issue.NewMetaData(id,
			"Debug output left in source",
			issue.CatQuality, issue.Low, issue.Medium),
		output: regexp.MustCompile(outputPrimitive),
		marker: regexp.MustCompile(`(?i)debug`),
	}
}
