package review

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/waigani/diffparser"

	"github.com/sevigo/pr-warden/internal/core"
)

// LineMap holds, per file, the lines of the new version that appear in the
// pull request diff. Only those lines accept inline review comments.
type LineMap map[string]map[int]struct{}

// ParseDiffLines builds a LineMap from a unified diff.
func ParseDiffLines(diff string) (LineMap, error) {
	parsed, err := diffparser.Parse(diff)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pull request diff: %w", err)
	}

	lines := make(LineMap)
	for _, file := range parsed.Files {
		if file.Mode == diffparser.DELETED || file.NewName == "" {
			continue
		}
		valid := make(map[int]struct{})
		for _, hunk := range file.Hunks {
			for _, l := range hunk.NewRange.Lines {
				if l.Mode == diffparser.REMOVED {
					continue
				}
				valid[l.Number] = struct{}{}
			}
		}
		lines[file.NewName] = valid
	}
	return lines, nil
}

// SplitIssuesByLine separates the issues of one file into those that can be
// posted as inline comments and those that stay in the review body.
func SplitIssuesByLine(logger *slog.Logger, fileName string, issues []core.ReviewIssue, validLines LineMap) ([]core.ReviewIssue, []core.ReviewIssue) {
	var inline []core.ReviewIssue
	var offDiff []core.ReviewIssue

	cleanPath := strings.TrimPrefix(fileName, "./")
	lines, exists := validLines[cleanPath]

	for _, issue := range issues {
		if issue.LineNumber <= 0 {
			offDiff = append(offDiff, issue)
			continue
		}
		if !exists {
			logger.Warn("Keeping issue in review body (file not in diff)", "file", cleanPath, "line", int(issue.LineNumber))
			offDiff = append(offDiff, issue)
			continue
		}
		if _, ok := lines[int(issue.LineNumber)]; ok {
			inline = append(inline, issue)
		} else {
			logger.Warn("Keeping issue in review body (off-diff line)", "file", cleanPath, "line", int(issue.LineNumber))
			offDiff = append(offDiff, issue)
		}
	}
	return inline, offDiff
}
