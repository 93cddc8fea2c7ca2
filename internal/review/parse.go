package review

import (
	"fmt"
	"strings"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/llm"
)

var (
	fileReviewFields = llm.RequiredFields(&core.FileReview{})
	issueFields      = llm.RequiredFields(&core.ReviewIssue{})
)

// ParseFileReview decodes a model answer into a FileReview. The score must
// lie in [1,10] and every issue needs all of its fields, a non-empty type
// and description, and a known severity. Unknown issue types are kept as
// sent.
func ParseFileReview(raw string) (core.FileReview, error) {
	var fr core.FileReview
	if err := llm.DecodeStrict(raw, &fr, fileReviewFields...); err != nil {
		return core.FileReview{}, err
	}
	if err := llm.RequireItemFields(raw, "issues", issueFields...); err != nil {
		return core.FileReview{}, err
	}
	if fr.Score < 1 || fr.Score > 10 {
		return core.FileReview{}, &core.ParseError{Field: "score", Reason: fmt.Sprintf("is %d, expected 1 to 10", fr.Score)}
	}

	for i := range fr.Issues {
		issue := &fr.Issues[i]
		issue.Type = normalize(issue.Type)
		issue.Severity = normalize(issue.Severity)
		if issue.Type == "" {
			return core.FileReview{}, &core.ParseError{Field: fmt.Sprintf("issues[%d].type", i), Reason: "is empty"}
		}
		if strings.TrimSpace(issue.Description) == "" {
			return core.FileReview{}, &core.ParseError{Field: fmt.Sprintf("issues[%d].description", i), Reason: "is empty"}
		}
		switch issue.Severity {
		case core.SeverityHigh, core.SeverityMedium, core.SeverityLow:
		default:
			return core.FileReview{}, &core.ParseError{
				Field:  fmt.Sprintf("issues[%d].severity", i),
				Reason: fmt.Sprintf("is %q, expected high, medium or low", issue.Severity),
			}
		}
	}
	return fr, nil
}

// normalize lowercases a label and turns "Best Practice" or "best-practice"
// into "best_practice".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
