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

type uninitializedRead struct {
	issue.MetaData
	decl *regexp.Regexp
}

func (r *uninitializedRead) ID() string {
	return r.MetaData.ID
}

// Match applies the file-local read-before-assign heuristic: a scalar
// declared without an initializer inside a block is reported at its first
// use when that use is a read. A plain assignment or an address-of (the
// usual out-parameter write) counts as initialization. Conditional paths
// are not modelled, so findings are best-effort.
func (r *uninitializedRead) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, m := range r.decl.FindAllSubmatchIndex(code, -1) {
		declStart, declEnd := m[0], m[1]
		blockStart, blockEnd := ctx.EnclosingBlock(declStart)
		if blockStart == 0 && blockEnd == len(code) {
			// File-scope declaration, zero-initialized by the runtime.
			continue
		}
		for _, ident := range splitDeclarators(code[m[2]:m[3]]) {
			readAt := firstUnassignedRead(code, ident, declEnd, blockEnd)
			if readAt < 0 {
				continue
			}
			issues = append(issues, ctx.NewIssue(readAt, len(ident),
				r.ID(), r.What, r.Category, r.Severity, r.Confidence))
		}
	}
	return issues, nil
}

var declaratorIdent = regexp.MustCompile(`[A-Za-z_]\w*`)

func splitDeclarators(list []byte) []string {
	return declaratorIdent.FindAllString(string(list), -1)
}

// firstUnassignedRead scans the block for the first use of the identifier.
// It returns the read offset, or -1 when the first use assigns the
// identifier or there is no use at all.
func firstUnassignedRead(code []byte, ident string, from, to int) int {
	use := regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `\b`)
	for _, m := range use.FindAllIndex(code[from:to], -1) {
		start, end := from+m[0], from+m[1]
		if start > 0 && code[start-1] == '&' {
			return -1 // address taken, written through the pointer
		}
		i := end
		for i < to && (code[i] == ' ' || code[i] == '\t') {
			i++
		}
		if i < to && code[i] == '=' && (i+1 >= to || code[i+1] != '=') {
			return -1 // plain assignment initializes it
		}
		if i+1 < to && ((code[i] == '+' && code[i+1] == '+') || (code[i] == '-' && code[i+1] == '-')) {
			// Increment both reads and writes; the read happens first.
			return start
		}
		return start
	}
	return -1
}

// NewUninitializedRead detects scalars read before any assignment in their
// scope.
func NewUninitializedRead(id string, _ csec.Config) csec.Rule {
	return &uninitializedRead{
		MetaData: issue.NewMetaData(id,
			"Variable may be read before it is assigned (best-effort heuristic)",
			issue.CatQuality, issue.Medium, issue.Low),
		decl: regexp.MustCompile(`\b(?:int|char|short|long|float|double|size_t|unsigned|signed)` +
			`(?:\s+(?:int|char|short|long))*` +
			`\s+([A-Za-z_]\w*(?:\s*,\s*[A-Za-z_]\w*)*)\s*;`),
	}
}
