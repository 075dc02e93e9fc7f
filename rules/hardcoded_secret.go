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
	"strconv"

	zxcvbn "github.com/ccojocar/zxcvbn-go"

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

// SecretNamePattern is the default identifier pattern for secret-bearing
// names. It is shared with the secret exposure rule.
const SecretNamePattern = `(?i)secret|password|passwd|pwd|api[_-]?key|token`

// assignWindow bounds how far an assignment and its literal may sit from
// the identifier.
const assignWindow = 40

type hardcodedSecret struct {
	issue.MetaData
	pattern          *regexp.Regexp
	minLength        int
	entropyOnly      bool
	entropyThreshold float64
	perCharThreshold float64
	truncate         int
}

func (r *hardcodedSecret) ID() string {
	return r.MetaData.ID
}

func truncateString(s string, n int) string {
	if n > len(s) {
		return s
	}
	return s[:n]
}

// isHighEntropyString scores the literal with zxcvbn, caching results in the
// shared LRU since the same literal tends to recur across fixtures.
func (r *hardcodedSecret) isHighEntropyString(str string) bool {
	s := truncateString(str, r.truncate)
	if len(s) == 0 {
		return false
	}
	key := csec.GlobalKey{Kind: csec.CacheKindEntropy, Str: s}
	if val, ok := csec.GlobalCache.Get(key); ok {
		return val.(bool)
	}
	info := zxcvbn.PasswordStrength(s, nil)
	entropyPerChar := info.Entropy / float64(len(s))
	high := info.Entropy >= r.entropyThreshold ||
		(info.Entropy >= (r.entropyThreshold/2) && entropyPerChar >= r.perCharThreshold)
	csec.GlobalCache.Add(key, high)
	return high
}

// assignmentAt reports whether code[i] is a plain assignment operator.
func assignmentAt(code []byte, i int) bool {
	if code[i] != '=' {
		return false
	}
	if i+1 < len(code) && code[i+1] == '=' {
		return false
	}
	if i > 0 {
		switch code[i-1] {
		case '=', '!', '<', '>', '+', '-', '*', '/', '%', '&', '|', '^':
			return false
		}
	}
	return true
}

// Match looks for secret-named identifiers that are assigned a quoted
// literal within the assignment window. The identifier must sit in plain
// code; the literal is read back from the lexical segmentation so escapes
// and embedded quotes are handled by the lexer, not here. The finding is
// anchored at the literal.
func (r *hardcodedSecret) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, m := range r.pattern.FindAllIndex(code, -1) {
		// Extend to the whole identifier so pattern matches inside longer
		// names (api_secret, global_password) qualify once.
		identEnd := m[1]
		for identEnd < len(code) && isWordByte(code[identEnd]) {
			identEnd++
		}

		literal, ok := r.literalAssignedNear(ctx, code, identEnd)
		if !ok {
			continue
		}
		content := literalContent(ctx, literal)
		if len(content) < r.minLength {
			continue
		}
		highEntropy := r.isHighEntropyString(content)
		if r.entropyOnly && !highEntropy {
			continue
		}
		confidence := r.Confidence
		if highEntropy {
			confidence = issue.High
		}
		issues = append(issues, ctx.NewIssue(literal.Start, literal.End-literal.Start,
			r.ID(), r.What, r.Category, r.Severity, confidence))
	}
	return issues, nil
}

// literalAssignedNear finds an assignment operator within the window after
// the identifier and the string literal that follows it.
func (r *hardcodedSecret) literalAssignedNear(ctx *csec.Context, code []byte, identEnd int) (csec.Segment, bool) {
	limit := identEnd + assignWindow
	if limit > len(code) {
		limit = len(code)
	}
	assign := -1
	for i := identEnd; i < limit; i++ {
		if code[i] == ';' {
			// The window never crosses a statement boundary.
			break
		}
		if assignmentAt(code, i) {
			assign = i
			break
		}
	}
	if assign < 0 {
		return csec.Segment{}, false
	}
	raw := ctx.Source.Raw()
	for i := assign + 1; i < limit && i < len(raw); i++ {
		if raw[i] == '"' {
			if seg, ok := ctx.StringAt(i); ok && seg.Kind == csec.SegDQString && seg.Start == i {
				return seg, true
			}
			return csec.Segment{}, false
		}
	}
	return csec.Segment{}, false
}

// NewHardcodedSecret detects literal credentials or keys assigned to a
// secret-named identifier. Low-entropy literals are still reported unless
// the rule is switched to entropy-only mode; high-entropy literals are
// promoted to high confidence.
func NewHardcodedSecret(id string, conf csec.Config) csec.Rule {
	r := &hardcodedSecret{
		MetaData: issue.NewMetaData(id,
			"Potential hardcoded secret assigned to an identifier",
			issue.CatSecurity, issue.High, issue.Medium),
		pattern:          regexp.MustCompile(SecretNamePattern),
		minLength:        6,
		entropyOnly:      false,
		entropyThreshold: 80.0,
		perCharThreshold: 3.0,
		truncate:         16,
	}
	if pattern, err := conf.GetGlobal(csec.SecretPattern); err == nil {
		r.pattern = regexp.MustCompile(pattern)
	}
	if enabled, err := conf.IsGlobalEnabled(csec.SecretEntropyOnly); err == nil {
		r.entropyOnly = enabled
	}
	r.configure(conf, id)
	return r
}

func (r *hardcodedSecret) configure(conf csec.Config, id string) {
	section, err := conf.Get(id)
	if err != nil {
		return
	}
	settings, ok := section.(map[string]interface{})
	if !ok {
		return
	}
	if pattern, ok := settings["pattern"].(string); ok {
		r.pattern = regexp.MustCompile(pattern)
	}
	if length, ok := asInt(settings["min_literal_length"]); ok {
		r.minLength = length
	}
	if entropyOnly, ok := settings["entropy_only"].(bool); ok {
		r.entropyOnly = entropyOnly
	}
	if threshold, ok := asFloat(settings["entropy_threshold"]); ok {
		r.entropyThreshold = threshold
	}
	if threshold, ok := asFloat(settings["per_char_threshold"]); ok {
		r.perCharThreshold = threshold
	}
	if truncate, ok := asInt(settings["truncate"]); ok {
		r.truncate = truncate
	}
}

func asInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
