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

type secretExposure struct {
	issue.MetaData
	output     *regexp.Regexp
	secretName *regexp.Regexp
}

func (r *secretExposure) ID() string {
	return r.MetaData.ID
}

// Match flags output statements that pass a secret-named identifier to an
// output primitive. Both the primitive and the identifier must sit in plain
// code, so a literal that merely mentions a secret does not fire. The
// finding is anchored at the identifier.
func (r *secretExposure) Match(ctx *csec.Context) ([]*issue.Issue, error) {
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
		arg := r.secretName.FindIndex(code[m[3]:end])
		if arg == nil {
			continue
		}
		identStart := m[3] + arg[0]
		for identStart > 0 && isWordByte(code[identStart-1]) {
			identStart--
		}
		identEnd := m[3] + arg[1]
		for identEnd < len(code) && isWordByte(code[identEnd]) {
			identEnd++
		}
		issues = append(issues, ctx.NewIssue(identStart, identEnd-identStart,
			r.ID(), r.What, r.Category, r.Severity, r.Confidence))
	}
	return issues, nil
}

// NewSecretExposure detects secret-named identifiers passed to output
// primitives.
func NewSecretExposure(id string, conf csec.Config) csec.Rule {
	pattern := SecretNamePattern
	if p, err := conf.GetGlobal(csec.SecretPattern); err == nil {
		pattern = p
	}
	return &secretExposure{
		MetaData: issue.NewMetaData(id,
			"Secret-named identifier passed to an output primitive",
			issue.CatSecurity, issue.Medium, issue.Medium),
		output:     regexp.MustCompile(outputPrimitive),
		secretName: regexp.MustCompile(pattern),
	}
}
