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

// SegmentKind classifies a byte range of the buffer as code, comment or
// string literal.
type SegmentKind int

const (
	// SegCode is plain code outside any literal or comment
	SegCode SegmentKind = iota
	// SegLineComment is a // comment up to, but excluding, its newline
	SegLineComment
	// SegBlockComment is a /* ... */ comment including the delimiters
	SegBlockComment
	// SegDQString is a double-quoted string literal including the quotes
	SegDQString
	// SegSQString is a single-quoted character literal including the quotes
	SegSQString
)

// Segment is a contiguous byte range [Start, End) of uniform kind.
type Segment struct {
	Kind  SegmentKind
	Start int
	End   int
}

// lexSegments walks the buffer once and splits it into consecutive
// segments. The tracker is deliberately coarse: states are code, line
// comment, block comment, double-quoted string and single-quoted string,
// with transitions driven by the current and next byte. A backslash inside
// a string consumes the following byte. Unterminated literals and comments
// run to end of buffer.
func lexSegments(raw []byte) []Segment {
	var segments []Segment
	state := SegCode
	start := 0

	flush := func(end int, next SegmentKind) {
		if end > start {
			segments = append(segments, Segment{Kind: state, Start: start, End: end})
		}
		state = next
		start = end
	}

	for i := 0; i < len(raw); i++ {
		b := raw[i]
		var next byte
		if i+1 < len(raw) {
			next = raw[i+1]
		}

		switch state {
		case SegCode:
			switch {
			case b == '/' && next == '/':
				flush(i, SegLineComment)
				i++ // second slash belongs to the comment
			case b == '/' && next == '*':
				flush(i, SegBlockComment)
				i++
			case b == '"':
				flush(i, SegDQString)
			case b == '\'':
				flush(i, SegSQString)
			}
		case SegLineComment:
			if b == '\n' {
				flush(i, SegCode)
			}
		case SegBlockComment:
			if b == '*' && next == '/' {
				i++
				flush(i+1, SegCode)
			}
		case SegDQString:
			switch b {
			case '\\':
				i++ // escape consumes the next byte
			case '"':
				flush(i+1, SegCode)
			}
		case SegSQString:
			switch b {
			case '\\':
				i++
			case '\'':
				flush(i+1, SegCode)
			}
		}
	}
	flush(len(raw), SegCode)
	return segments
}

// maskNonCode returns a copy of raw where every byte that is not plain code
// is blanked to a space. Newlines are kept so offsets and line numbers are
// preserved. Rules that must not match inside literals or comments run
// their patterns over this view.
func maskNonCode(raw []byte, segments []Segment) []byte {
	code := make([]byte, len(raw))
	copy(code, raw)
	for _, seg := range segments {
		if seg.Kind == SegCode {
			continue
		}
		for i := seg.Start; i < seg.End; i++ {
			if code[i] != '\n' {
				code[i] = ' '
			}
		}
	}
	return code
}
