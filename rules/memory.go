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

type memoryLeak struct {
	issue.MetaData
	alloc *regexp.Regexp
}

func (r *memoryLeak) ID() string {
	return r.MetaData.ID
}

// allocSite captures one heap allocation: the offset and length of the
// allocator token and the identifier receiving the result, when one exists.
type allocSite struct {
	start    int
	length   int
	receiver string
}

var allocAssign = regexp.MustCompile(`(\w+)\s*=\s*(?:\([^)]*\)\s*)?$`)

// Match applies the file-local leak heuristic: for every heap allocation,
// the same balanced-brace block must contain a release of the receiving
// identifier. The heuristic does not follow ownership across returns or
// calls, so its findings are best-effort.
func (r *memoryLeak) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, site := range r.allocSites(code) {
		if r.released(ctx, code, site) {
			continue
		}
		issues = append(issues, ctx.NewIssue(site.start, site.length,
			r.ID(), r.What, r.Category, r.Severity, r.Confidence))
	}
	return issues, nil
}

func (r *memoryLeak) allocSites(code []byte) []allocSite {
	var sites []allocSite
	for _, m := range r.alloc.FindAllSubmatchIndex(code, -1) {
		// Group 1 is the malloc-family callee; the alternative is the new
		// keyword, whose token is the first three bytes of the match.
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[0], m[0]+len("new")
		}
		if start > 0 {
			prev := code[start-1]
			if isWordByte(prev) || prev == '.' || prev == '>' {
				continue
			}
		}
		site := allocSite{start: start, length: end - start}
		// `p = malloc(n)` or `p = (char*)malloc(n)`: the receiver is the
		// identifier assigned directly before the allocator, casts skipped.
		if lhs := allocAssign.FindSubmatch(code[:start]); lhs != nil {
			site.receiver = string(lhs[1])
		}
		sites = append(sites, site)
	}
	return sites
}

// released scans forward from the allocation to the end of its enclosing
// block for a release of the receiving identifier. An allocation with no
// receiver has nothing to match a release against and is always reported.
func (r *memoryLeak) released(ctx *csec.Context, code []byte, site allocSite) bool {
	if site.receiver == "" {
		return false
	}
	_, blockEnd := ctx.EnclosingBlock(site.start)
	release := regexp.MustCompile(
		`\b(?:free\s*\(\s*` + regexp.QuoteMeta(site.receiver) + `\s*\)` +
			`|delete\s*(?:\[\s*\]\s*)?` + regexp.QuoteMeta(site.receiver) + `\b)`)
	return release.Match(code[site.start:blockEnd])
}

// NewMemoryLeak detects heap allocations without a paired release on any
// exit path of the enclosing block.
func NewMemoryLeak(id string, _ csec.Config) csec.Rule {
	return &memoryLeak{
		MetaData: issue.NewMetaData(id,
			"Heap allocation without a matching release in the enclosing block (best-effort heuristic)",
			issue.CatQuality, issue.Medium, issue.Low),
		alloc: regexp.MustCompile(`(malloc|calloc|realloc)\(|\bnew\s`),
	}
}
