package csec

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/securec/csec/issue"
)

// ReportInfo this is report information
type ReportInfo struct {
	ID     string             `json:"id"`
	Errors map[string][]Error `json:"errors"`
	Issues []*issue.Issue     `json:"issues"`
	Stats  *Metrics           `json:"stats"`
}

// NewReportInfo instantiates a ReportInfo. The report id is derived from the
// set of scanned paths so identical runs produce identical reports.
func NewReportInfo(issues []*issue.Issue, metrics *Metrics, errors map[string][]Error) *ReportInfo {
	return &ReportInfo{
		ID:     reportID(issues, errors),
		Errors: errors,
		Issues: issues,
		Stats:  metrics,
	}
}

func reportID(issues []*issue.Issue, errors map[string][]Error) string {
	paths := map[string]bool{}
	for _, iss := range issues {
		paths[iss.Path] = true
	}
	for path := range errors {
		paths[path] = true
	}
	ordered := make([]string, 0, len(paths))
	for path := range paths {
		ordered = append(ordered, path)
	}
	sort.Strings(ordered)
	return uuid.NewMD5(uuid.Nil, []byte(strings.Join(ordered, "\x00"))).String()
}
