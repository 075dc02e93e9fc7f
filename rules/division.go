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

type uncheckedDivision struct {
	issue.MetaData
	ifGuard *regexp.Regexp
}

func (r *uncheckedDivision) ID() string {
	return r.MetaData.ID
}

// Match flags integer divisions whose divisor is not demonstrably non-zero.
// A division is suppressed when the right-hand operand is a nonzero numeric
// literal, or when the divisor identifier appears in an if condition
// earlier in the same block. Preprocessor lines are skipped so include
// paths never look like divisions.
func (r *uncheckedDivision) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for i := 0; i < len(code); i++ {
		if code[i] != '/' {
			continue
		}
		if i+1 < len(code) && (code[i+1] == '/' || code[i+1] == '*' || code[i+1] == '=') {
			continue
		}
		if i > 0 && (code[i-1] == '/' || code[i-1] == '*') {
			continue
		}
		if preprocessorLine(code, i) {
			continue
		}
		if !integerOperandBefore(code, i) {
			continue
		}
		divisor, ok := rightOperand(code, i)
		if !ok {
			continue
		}
		if divisor.isLiteral {
			if divisor.nonZero {
				continue
			}
		} else if r.guarded(code, ctx, i, divisor.text) {
			continue
		}
		issues = append(issues, ctx.NewIssue(i, 1, r.ID(), r.What, r.Category, r.Severity, r.Confidence))
	}
	return issues, nil
}

// guarded reports whether the divisor identifier is mentioned in an if
// condition earlier in the same balanced-brace block, or in the if header
// the block hangs off.
func (r *uncheckedDivision) guarded(code []byte, ctx *csec.Context, offset int, divisor string) bool {
	if divisor == "" {
		return false
	}
	blockStart, _ := ctx.EnclosingBlock(offset)
	ident := regexp.MustCompile(`\b` + regexp.QuoteMeta(divisor) + `\b`)
	for _, m := range r.ifGuard.FindAllIndex(code[blockStart:offset], -1) {
		condStart := blockStart + m[1]
		condEnd := closeParen(code, condStart-1)
		if condEnd > condStart && ident.Match(code[condStart:condEnd]) {
			return true
		}
	}
	if start, end, ok := ifHeaderBefore(code, blockStart); ok && ident.Match(code[start:end]) {
		return true
	}
	return false
}

// ifHeaderBefore locates the parenthesized condition of an if statement
// whose body starts at blockStart, when there is one.
func ifHeaderBefore(code []byte, blockStart int) (int, int, bool) {
	i := blockStart - 1
	for i >= 0 && (code[i] == ' ' || code[i] == '\t' || code[i] == '\n' || code[i] == '\r') {
		i--
	}
	if i < 0 || code[i] != ')' {
		return 0, 0, false
	}
	open := openParen(code, i)
	if open < 0 {
		return 0, 0, false
	}
	j := open - 1
	for j >= 0 && (code[j] == ' ' || code[j] == '\t') {
		j--
	}
	if j < 1 || code[j] != 'f' || code[j-1] != 'i' {
		return 0, 0, false
	}
	if j >= 2 && isWordByte(code[j-2]) {
		return 0, 0, false
	}
	return open + 1, i, true
}

// openParen returns the offset of the parenthesis matching the closing one
// at close, or -1 when unbalanced.
func openParen(code []byte, close int) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch code[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// closeParen returns the offset of the parenthesis matching the one at
// open, or open when unbalanced.
func closeParen(code []byte, open int) int {
	depth := 0
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return open
}

// preprocessorLine reports whether the byte at offset sits on a line whose
// first non-space byte is '#'.
func preprocessorLine(code []byte, offset int) bool {
	start := offset
	for start > 0 && code[start-1] != '\n' {
		start--
	}
	for start < len(code) && (code[start] == ' ' || code[start] == '\t') {
		start++
	}
	return start < len(code) && code[start] == '#'
}

// integerOperandBefore checks that the token left of the slash could be an
// integer value: an identifier, an integer literal, or a closing bracket.
// A floating literal on the left makes this a float division.
func integerOperandBefore(code []byte, offset int) bool {
	i := offset - 1
	for i >= 0 && (code[i] == ' ' || code[i] == '\t') {
		i--
	}
	if i < 0 {
		return false
	}
	switch {
	case code[i] == ')' || code[i] == ']':
		return true
	case isWordByte(code[i]):
		end := i + 1
		for i >= 0 && (isWordByte(code[i]) || code[i] == '.') {
			i--
		}
		token := string(code[i+1 : end])
		for _, b := range []byte(token) {
			if b == '.' {
				return false
			}
		}
		return true
	}
	return false
}

type operand struct {
	text      string
	isLiteral bool
	nonZero   bool
}

// rightOperand extracts the token right of the slash.
func rightOperand(code []byte, offset int) (operand, bool) {
	i := offset + 1
	for i < len(code) && (code[i] == ' ' || code[i] == '\t') {
		i++
	}
	if i >= len(code) || !isWordByte(code[i]) {
		// Parenthesized or otherwise opaque divisor: not demonstrably
		// non-zero, treated as an identifier with no name to guard on.
		if i < len(code) && code[i] == '(' {
			return operand{}, true
		}
		return operand{}, false
	}
	start := i
	for i < len(code) && (isWordByte(code[i]) || code[i] == '.') {
		i++
	}
	token := string(code[start:i])
	if token[0] >= '0' && token[0] <= '9' {
		nonZero := false
		float := false
		for _, b := range []byte(token) {
			if b == '.' {
				float = true
			}
			if (b >= '1' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') {
				// Hex digits count so 0x0A is not mistaken for zero.
				nonZero = true
			}
		}
		if float {
			// Float division is out of scope for an integer-division rule.
			return operand{}, false
		}
		return operand{text: token, isLiteral: true, nonZero: nonZero}, true
	}
	return operand{text: token}, true
}

// NewUncheckedDivision detects integer divisions whose divisor is not
// demonstrably non-zero.
func NewUncheckedDivision(id string, _ csec.Config) csec.Rule {
	return &uncheckedDivision{
		MetaData: issue.NewMetaData(id,
			"Integer division, divisor is not demonstrably non-zero",
			issue.CatQuality, issue.Medium, issue.Medium),
		ifGuard: regexp.MustCompile(`\bif\s*\(`),
	}
}
