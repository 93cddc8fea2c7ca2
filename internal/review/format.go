package review

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/core"
)

const disclaimer = "*此代码审查由 AI 辅助完成，仅供参考。*"

// typeEmoji returns the badge for an issue type.
func typeEmoji(issueType string) string {
	switch issueType {
	case core.IssueBug:
		return "🐛"
	case core.IssuePerformance:
		return "⚡"
	case core.IssueSecurity:
		return "🔒"
	case core.IssueStyle:
		return "💅"
	case core.IssueBestPractice:
		return "✨"
	default:
		return "❓"
	}
}

// severityEmoji returns an emoji for the given severity level.
func severityEmoji(severity string) string {
	switch severity {
	case core.SeverityHigh:
		return "🔴"
	case core.SeverityMedium:
		return "🟡"
	case core.SeverityLow:
		return "🟢"
	default:
		return "❓"
	}
}

// severityAlert returns the GitHub alert type used to frame a suggestion.
func severityAlert(severity string) string {
	switch severity {
	case core.SeverityHigh:
		return "CAUTION"
	case core.SeverityMedium:
		return "WARNING"
	default:
		return "NOTE"
	}
}

// titleCase capitalizes every word, where words are split by anything that
// is not a letter: "best_practice" becomes "Best_Practice".
func titleCase(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if !prevLetter {
				runes[i] = unicode.ToUpper(r)
			} else {
				runes[i] = unicode.ToLower(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(runes)
}

// FormatFileComment renders the review of one file as the body of a pull
// request review.
func FormatFileComment(fr *core.FileReview) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## 代码审查结果: %s\n\n", fr.FileName)
	fmt.Fprintf(&sb, "### 总体评分: %d/10\n\n", fr.Score)
	fmt.Fprintf(&sb, "%s\n\n", fr.Summary)

	sb.WriteString("### 值得表扬的方面 👏\n")
	for _, aspect := range fr.PositiveAspects {
		fmt.Fprintf(&sb, "- %s\n", aspect)
	}

	sb.WriteString("\n### 发现的问题\n")
	if len(fr.Issues) == 0 {
		sb.WriteString("\n没有发现重要问题。\n")
	}
	for _, issue := range fr.Issues {
		fmt.Fprintf(&sb, "\n#### %s %s %s\n", typeEmoji(issue.Type), severityEmoji(issue.Severity), titleCase(issue.Type))
		fmt.Fprintf(&sb, "- **描述**: %s\n", issue.Description)
		fmt.Fprintf(&sb, "- **建议**: %s\n", issue.Suggestion)
		if issue.LineNumber > 0 {
			fmt.Fprintf(&sb, "- **位置**: 第 %d 行\n", issue.LineNumber)
		}
	}

	sb.WriteString("\n---\n" + disclaimer)
	return sb.String()
}

// FormatInlineComment renders one issue as a line comment. The suggestion is
// wrapped in a GitHub alert matching the severity.
func FormatInlineComment(issue core.ReviewIssue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s **%s**: %s\n\n", typeEmoji(issue.Type), severityEmoji(issue.Severity), titleCase(issue.Type), issue.Description)
	fmt.Fprintf(&sb, "> [!%s]\n", severityAlert(issue.Severity))

	lines := strings.Split(strings.TrimSpace(issue.Suggestion), "\n")
	fmt.Fprintf(&sb, "> 建议: %s\n", lines[0])
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			sb.WriteString(">\n")
			continue
		}
		fmt.Fprintf(&sb, "> %s\n", line)
	}
	return sb.String()
}

// FormatSummaryComment renders the aggregate numbers posted once per run.
func FormatSummaryComment(s *core.ReviewSummary) string {
	var sb strings.Builder
	sb.WriteString("# 代码审查总结\n\n")
	fmt.Fprintf(&sb, "- 审查的文件数: %d\n", s.ConsideredFiles)
	if s.SkippedFiles > 0 || s.FailedFiles > 0 {
		fmt.Fprintf(&sb, "  - 已审查: %d，已跳过: %d，失败: %d\n", s.ReviewedFiles, s.SkippedFiles, s.FailedFiles)
	}
	fmt.Fprintf(&sb, "- 发现的问题总数: %d\n", s.TotalIssues)
	fmt.Fprintf(&sb, "- 高严重性问题: %d\n", s.HighSeverityIssues)
	if s.LowQualityFiles > 0 {
		fmt.Fprintf(&sb, "- 低质量文件: %d\n", s.LowQualityFiles)
	}
	sb.WriteString("\n")

	switch {
	case s.HighSeverityIssues > 0:
		sb.WriteString("⚠️ 发现高严重性问题，请在合并前解决。\n")
	case s.LowQualityFiles > 0:
		sb.WriteString("⚠️ 部分文件评分低于合格标准，请在合并前改进。\n")
	case s.ReviewedFiles == 0:
		sb.WriteString("ℹ️ 没有可审查的文件。\n")
	default:
		sb.WriteString("✅ 没有发现高严重性问题。\n")
	}

	if len(s.Files) > 0 {
		sb.WriteString("\n| 文件 | 评分 | 问题 | 高严重性 |\n")
		sb.WriteString("|------|------|------|----------|\n")
		for _, fr := range s.Files {
			fmt.Fprintf(&sb, "| `%s` | %d/10 | %d | %d |\n", fr.FileName, fr.Score, len(fr.Issues), countHigh(fr.Issues))
		}
	}
	return sb.String()
}

func countHigh(issues []core.ReviewIssue) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == core.SeverityHigh {
			n++
		}
	}
	return n
}

// Report builds the check report for a finished review.
func Report(s *core.ReviewSummary) core.CheckReport {
	report := core.CheckReport{
		Text:       FormatSummaryComment(s),
		Conclusion: s.Conclusion,
	}
	switch s.Conclusion {
	case core.ConclusionFailure:
		report.Title = "代码审查未通过"
	case core.ConclusionSuccess:
		report.Title = "代码审查通过"
	default:
		report.Title = "没有可审查的文件"
	}
	report.Summary = fmt.Sprintf("审查了 %d 个文件，发现 %d 个问题，其中 %d 个高严重性问题。",
		s.ReviewedFiles, s.TotalIssues, s.HighSeverityIssues)
	return report
}

// Outputs maps a finished review to the code_review_* step outputs.
func Outputs(s *core.ReviewSummary, r core.CheckReport) []actions.Output {
	return []actions.Output{
		{Key: "code_review_title", Value: r.Title},
		{Key: "code_review_summary", Value: r.Summary},
		{Key: "code_review_conclusion", Value: string(r.Conclusion)},
		{Key: "code_review_total_issues", Value: fmt.Sprint(s.TotalIssues)},
		{Key: "code_review_high_severity_issues", Value: fmt.Sprint(s.HighSeverityIssues)},
		{Key: "code_review_text", Value: r.Text},
	}
}
