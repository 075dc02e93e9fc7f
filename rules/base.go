package rules

import (
	"regexp"
	"strings"

	"github.com/securec/csec"
	"github.com/securec/csec/issue"
)

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// callSiteRule is a base for rules that flag a bare call to a deny-listed
// identifier. It provides the standard Match() implementation used by the
// unsafe-primitive rules.
type callSiteRule struct {
	issue.MetaData
	pattern *regexp.Regexp
}

func newCallSiteRule(meta issue.MetaData, callees ...string) callSiteRule {
	return callSiteRule{
		MetaData: meta,
		pattern:  regexp.MustCompile(`(` + strings.Join(callees, "|") + `)\(`),
	}
}

// ID returns the rule id
func (r *callSiteRule) ID() string {
	return r.MetaData.ID
}

// Match walks the masked code view, so occurrences inside string literals
// and comments never fire. A callee preceded by a word character, a dot or
// an arrow is a member access, not a bare call.
func (r *callSiteRule) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	code := ctx.Code()
	for _, m := range r.pattern.FindAllSubmatchIndex(code, -1) {
		start, end := m[2], m[3]
		if start > 0 {
			prev := code[start-1]
			if isWordByte(prev) || prev == '.' || prev == '>' {
				continue
			}
		}
		issues = append(issues, ctx.NewIssue(start, end-start, r.ID(), r.What, r.Category, r.Severity, r.Confidence))
	}
	return issues, nil
}

// commentScanRule is a base for rules that inspect comment contents. At
// most one finding is emitted per comment, anchored at the first matching
// token.
type commentScanRule struct {
	issue.MetaData
	pattern *regexp.Regexp
}

// ID returns the rule id
func (r *commentScanRule) ID() string {
	return r.MetaData.ID
}

func (r *commentScanRule) Match(ctx *csec.Context) ([]*issue.Issue, error) {
	var issues []*issue.Issue
	raw := ctx.Source.Raw()
	for _, seg := range ctx.Comments() {
		m := r.pattern.FindIndex(raw[seg.Start:seg.End])
		if m == nil {
			continue
		}
		issues = append(issues, ctx.NewIssue(seg.Start+m[0], m[1]-m[0], r.ID(), r.What, r.Category, r.Severity, r.Confidence))
	}
	return issues, nil
}

// statementEnd returns the offset just past the logical statement that
// starts at the given offset: the terminating semicolon, or the end of the
// buffer for an unterminated statement. Only the masked code view is
// consulted so semicolons inside literals do not end a statement early.
func statementEnd(code []byte, offset int) int {
	for i := offset; i < len(code); i++ {
		if code[i] == ';' {
			return i + 1
		}
	}
	return len(code)
}

// stringLiteralsIn lists the double-quoted string segments that fall
// entirely inside [start, end), in buffer order.
func stringLiteralsIn(ctx *csec.Context, start, end int) []csec.Segment {
	var literals []csec.Segment
	for _, seg := range ctx.Segments() {
		if seg.Kind == csec.SegDQString && seg.Start >= start && seg.End <= end {
			literals = append(literals, seg)
		}
	}
	return literals
}

// literalContent strips the surrounding quotes from a string segment.
func literalContent(ctx *csec.Context, seg csec.Segment) string {
	raw := ctx.Source.Raw()
	start, end := seg.Start+1, seg.End
	if end > start && raw[end-1] == '"' {
		end--
	}
	if end < start {
		end = start
	}
	return string(raw[start:end])
}
