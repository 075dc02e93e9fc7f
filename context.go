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
	"github.com/securec/csec/issue"
)

// The Context is populated with data derived from the source buffer as it
// is prepared for scanning. It is passed through to all rule functions as
// they are called. The context is owned by a single Scan call and never
// shared between buffers.
type Context struct {
	Source *SourceBuffer
	Config Config

	segments []Segment
	code     []byte
}

// NewContext prepares a buffer for rule matching: the buffer is lexed once
// and the masked code view is shared by every rule in the registry.
func NewContext(source *SourceBuffer, config Config) *Context {
	segments := lexSegments(source.Raw())
	return &Context{
		Source:   source,
		Config:   config,
		segments: segments,
		code:     maskNonCode(source.Raw(), segments),
	}
}

// Code returns the buffer with string literals and comments blanked out.
// Offsets and newlines are identical to the raw buffer. Rules must not
// mutate the returned slice.
func (c *Context) Code() []byte {
	return c.code
}

// Segments returns the ordered lexical segmentation of the buffer.
func (c *Context) Segments() []Segment {
	return c.segments
}

// Comments returns the comment segments in buffer order.
func (c *Context) Comments() []Segment {
	var comments []Segment
	for _, seg := range c.segments {
		if seg.Kind == SegLineComment || seg.Kind == SegBlockComment {
			comments = append(comments, seg)
		}
	}
	return comments
}

// KindAt reports the lexical kind of the byte at the given offset.
func (c *Context) KindAt(offset int) SegmentKind {
	for _, seg := range c.segments {
		if offset >= seg.Start && offset < seg.End {
			return seg.Kind
		}
	}
	return SegCode
}

// StringAt returns the string literal segment covering the offset, if any.
func (c *Context) StringAt(offset int) (Segment, bool) {
	for _, seg := range c.segments {
		if offset >= seg.Start && offset < seg.End {
			return seg, seg.Kind == SegDQString || seg.Kind == SegSQString
		}
	}
	return Segment{}, false
}

// EnclosingBlock returns the byte range [start, end) of the innermost
// balanced-brace block containing the offset, using the masked code view so
// braces inside literals and comments do not count. An offset outside any
// block yields the whole buffer.
func (c *Context) EnclosingBlock(offset int) (int, int) {
	var open []int
	for i, b := range c.code {
		switch b {
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			// The first block to close around the offset is the innermost one.
			if start <= offset && offset < i {
				return start, i + 1
			}
		}
	}
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] <= offset {
			return open[i], len(c.code)
		}
	}
	return 0, len(c.code)
}

// NewIssue builds a finding anchored at the given byte offset with the
// matched span length, resolving line, column and the impacted source line.
func (c *Context) NewIssue(offset, length int, ruleID, what string, category issue.Category, severity, confidence issue.Score) *issue.Issue {
	line, col := c.Source.Location(offset)
	return issue.New(c.Source.Path(), line, col, length, ruleID, what, category, severity, confidence).
		WithCode(c.Source.CodeLine(line))
}
