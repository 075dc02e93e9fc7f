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
	"bytes"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidInput is returned when a buffer cannot be treated as text.
var ErrInvalidInput = errors.New("buffer could not be decoded as text")

// SourceBuffer is an immutable view over one decoded text file plus its
// logical path. All matching runs over the raw bytes; the decoded text is
// only used when rendering snippets and messages, with invalid byte
// sequences turned into replacement markers.
type SourceBuffer struct {
	path       string
	raw        []byte
	lineStarts []int
}

// NewSourceBuffer wraps raw bytes under a logical path. A buffer containing
// NUL bytes is rejected with ErrInvalidInput.
func NewSourceBuffer(path string, raw []byte) (*SourceBuffer, error) {
	if bytes.IndexByte(raw, 0x00) >= 0 {
		return nil, ErrInvalidInput
	}
	lineStarts := []int{0}
	for i, b := range raw {
		if b == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &SourceBuffer{
		path:       path,
		raw:        raw,
		lineStarts: lineStarts,
	}, nil
}

// Path returns the logical path of the buffer.
func (s *SourceBuffer) Path() string {
	return s.path
}

// Raw returns the raw byte content. Callers must not mutate it.
func (s *SourceBuffer) Raw() []byte {
	return s.raw
}

// Len returns the buffer length in bytes.
func (s *SourceBuffer) Len() int {
	return len(s.raw)
}

// NumLines returns the number of logical lines. A buffer with no newlines
// has exactly one line; so does an empty buffer.
func (s *SourceBuffer) NumLines() int {
	return len(s.lineStarts)
}

// Slice extracts the byte range [start, end).
func (s *SourceBuffer) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(s.raw) {
		return nil, fmt.Errorf("slice [%d, %d) out of range for buffer of %d bytes", start, end, len(s.raw))
	}
	return s.raw[start:end], nil
}

// Location converts a byte offset to a 1-based (line, column) pair. The
// column is byte-indexed. An offset equal to the buffer length maps to the
// end of the final line.
func (s *SourceBuffer) Location(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.raw) {
		offset = len(s.raw)
	}
	// Largest line start <= offset.
	idx := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	return idx + 1, offset - s.lineStarts[idx] + 1
}

// LineSpan returns the byte range [start, end) of the given 1-based line,
// excluding its terminator.
func (s *SourceBuffer) LineSpan(line int) (start, end int) {
	if line < 1 || line > len(s.lineStarts) {
		return 0, 0
	}
	start = s.lineStarts[line-1]
	if line < len(s.lineStarts) {
		end = s.lineStarts[line] - 1
	} else {
		end = len(s.raw)
	}
	return start, end
}

// Text returns the decoded content of the byte range [start, end). Bytes
// that do not form valid UTF-8 are replaced with U+FFFD so they never leak
// raw into messages.
func (s *SourceBuffer) Text(start, end int) string {
	raw, err := s.Slice(start, end)
	if err != nil {
		return ""
	}
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

// CodeLine returns the decoded text of the 1-based line, used as the
// snippet attached to findings.
func (s *SourceBuffer) CodeLine(line int) string {
	start, end := s.LineSpan(line)
	return s.Text(start, end)
}
