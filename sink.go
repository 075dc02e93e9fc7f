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

package csec

import (
	"sort"

	"github.com/securec/csec/issue"
)

// findingKey identifies an exact duplicate: same rule, path and position.
type findingKey struct {
	ruleID string
	path   string
	line   int
	col    int
}

type rankedFinding struct {
	order int // registry order of the emitting rule
	issue *issue.Issue
}

// findingSink collects the findings of one buffer scan. Exact duplicates
// collapse to the first seen; Collect imposes the final deterministic order
// (line, column, registry order of rule).
type findingSink struct {
	seen     map[findingKey]bool
	findings []rankedFinding
}

func newFindingSink() *findingSink {
	return &findingSink{seen: make(map[findingKey]bool)}
}

// Add records a finding unless an identical one was already seen.
func (s *findingSink) Add(order int, iss *issue.Issue) {
	key := findingKey{ruleID: iss.RuleID, path: iss.Path, line: iss.Line, col: iss.Col}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.findings = append(s.findings, rankedFinding{order: order, issue: iss})
}

// Collect returns the final ordered sequence for the scanned buffer.
func (s *findingSink) Collect() []*issue.Issue {
	sort.SliceStable(s.findings, func(i, j int) bool {
		a, b := s.findings[i], s.findings[j]
		if a.issue.Line != b.issue.Line {
			return a.issue.Line < b.issue.Line
		}
		if a.issue.Col != b.issue.Col {
			return a.issue.Col < b.issue.Col
		}
		return a.order < b.order
	})
	out := make([]*issue.Issue, 0, len(s.findings))
	for _, f := range s.findings {
		out = append(out, f.issue)
	}
	return out
}
