package quality

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/core"
)

const (
	titleAccepted = "PR 质量评估通过"
	titleRejected = "PR 质量评估未通过"
	titleFailed   = "LLM 评估失败"
)

// ScoreEmoji maps a score to the badge shown in the report heading.
func ScoreEmoji(score int) string {
	switch score {
	case 1, 2, 3:
		return "🚨"
	case 4, 5:
		return "⚠️"
	case 6, 7:
		return "👍"
	case 8:
		return "✅"
	case 9, 10:
		return "🌟"
	default:
		return "🔍"
	}
}

// FormatReport renders the verdict as Markdown.
func FormatReport(v *core.QualityVerdict) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s PR 质量评估\n\n", ScoreEmoji(v.Score))
	fmt.Fprintf(&sb, "**评分: %d/10** - %s\n\n", v.Score, v.Explanation)

	sb.WriteString("### 优点\n")
	writeList(&sb, v.Strengths)
	sb.WriteString("\n### 改进建议\n")
	writeList(&sb, v.Suggestions)

	sb.WriteString("\n---\n*此评估由 AI 生成，仅供参考。*\n")
	return sb.String()
}

func writeList(sb *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}

// Report builds the check report for a verdict. The conclusion follows the
// model's acceptance flag.
func Report(v *core.QualityVerdict) core.CheckReport {
	if v.IsAcceptable {
		return core.CheckReport{
			Title:      titleAccepted,
			Summary:    fmt.Sprintf("PR 质量评分: %d/10，达到合格标准。", v.Score),
			Text:       FormatReport(v),
			Conclusion: core.ConclusionSuccess,
		}
	}
	return core.CheckReport{
		Title:      titleRejected,
		Summary:    fmt.Sprintf("PR 质量评分: %d/10，未达到合格标准。", v.Score),
		Text:       FormatReport(v),
		Conclusion: core.ConclusionFailure,
	}
}

// FailureReport describes an evaluation that produced no verdict.
func FailureReport(err error) core.CheckReport {
	var cfgErr *core.ConfigurationError
	if errors.As(err, &cfgErr) {
		return core.CheckReport{
			Title:      titleFailed,
			Summary:    "缺少 LLM API 密钥。",
			Text:       fmt.Sprintf("请配置 %s 环境变量。", strings.Join(cfgErr.Missing, ", ")),
			Conclusion: core.ConclusionFailure,
		}
	}
	return core.CheckReport{
		Title:      titleFailed,
		Summary:    "无法获取有效的 LLM 响应。",
		Text:       "在多次重试后仍无法从 LLM API 获取有效响应。请检查 API 连接和模型可用性。",
		Conclusion: core.ConclusionFailure,
	}
}

// Outputs maps a report to the llm_check_* step outputs.
func Outputs(r core.CheckReport) []actions.Output {
	return []actions.Output{
		{Key: "llm_check_title", Value: r.Title},
		{Key: "llm_check_summary", Value: r.Summary},
		{Key: "llm_check_conclusion", Value: string(r.Conclusion)},
		{Key: "llm_check_text", Value: r.Text},
	}
}
