package core

import (
	"encoding/json"
	"strconv"
	"strings"
)

// QualityVerdict is the parsed answer of the PR quality evaluation.
type QualityVerdict struct {
	Score        int      `json:"quality_score" jsonschema:"required,minimum=1,maximum=10" jsonschema_description:"Overall quality score from 1 (poor) to 10 (excellent)"`
	IsAcceptable bool     `json:"is_acceptable" jsonschema:"required" jsonschema_description:"Whether the pull request description is good enough to merge"`
	Strengths    []string `json:"strengths" jsonschema:"required" jsonschema_description:"What the title and description do well"`
	Suggestions  []string `json:"improvement_suggestions" jsonschema:"required" jsonschema_description:"Concrete improvements for the title and description"`
	Explanation  string   `json:"explanation" jsonschema:"required" jsonschema_description:"Short reasoning behind the score"`
}

// Consistent reports whether the model's own acceptance flag agrees with
// the score and the given threshold.
func (v *QualityVerdict) Consistent(threshold int) bool {
	return v.IsAcceptable == (v.Score >= threshold)
}

// Issue types reported by the code review.
const (
	IssueBug          = "bug"
	IssuePerformance  = "performance"
	IssueSecurity     = "security"
	IssueStyle        = "style"
	IssueBestPractice = "best_practice"
)

// Issue severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// ReviewIssue is a single finding in a reviewed file.
type ReviewIssue struct {
	Type        string     `json:"type" jsonschema:"required,enum=bug,enum=performance,enum=security,enum=style,enum=best_practice"`
	Severity    string     `json:"severity" jsonschema:"required,enum=high,enum=medium,enum=low"`
	Description string     `json:"description" jsonschema:"required"`
	Suggestion  string     `json:"suggestion" jsonschema:"required"`
	LineNumber  LineNumber `json:"line_number,omitempty" jsonschema_description:"Line in the new version of the file, omit when not applicable"`
}

// FileReview is the review of one changed file.
type FileReview struct {
	FileName        string        `json:"-"`
	Score           int           `json:"score" jsonschema:"required,minimum=1,maximum=10"`
	Issues          []ReviewIssue `json:"issues" jsonschema:"required"`
	Summary         string        `json:"summary" jsonschema:"required"`
	PositiveAspects []string      `json:"positive_aspects" jsonschema:"required"`
}

// ReviewSummary aggregates the reviews of all considered files.
type ReviewSummary struct {
	ConsideredFiles    int
	ReviewedFiles      int
	SkippedFiles       int
	FailedFiles        int
	TotalIssues        int
	HighSeverityIssues int
	LowQualityFiles    int
	Conclusion         Conclusion
	Files              []FileReview
}

// LineNumber accepts both a JSON number and a numeric string. Zero means the
// issue is not tied to a line.
type LineNumber int

func (n *LineNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*n = 0
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Models sometimes answer "N/A" or a range; treat as file level.
		*n = 0
		return nil //nolint:nilerr // unparseable line numbers are not fatal
	}
	if v < 0 {
		v = 0
	}
	*n = LineNumber(v)
	return nil
}
