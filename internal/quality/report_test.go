package quality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/pr-warden/internal/core"
)

func TestScoreEmoji(t *testing.T) {
	want := map[int]string{
		0: "🔍", 1: "🚨", 3: "🚨", 4: "⚠️", 5: "⚠️", 6: "👍", 7: "👍", 8: "✅", 9: "🌟", 10: "🌟", 11: "🔍",
	}
	for score, emoji := range want {
		assert.Equal(t, emoji, ScoreEmoji(score), "score %d", score)
	}
}

func TestFormatReport(t *testing.T) {
	v := &core.QualityVerdict{
		Score:        8,
		IsAcceptable: true,
		Strengths:    []string{"清晰的标题", "说明了测试方式"},
		Suggestions:  []string{"补充性能影响"},
		Explanation:  "整体描述完整",
	}

	want := "## ✅ PR 质量评估\n\n" +
		"**评分: 8/10** - 整体描述完整\n\n" +
		"### 优点\n- 清晰的标题\n- 说明了测试方式\n\n" +
		"### 改进建议\n- 补充性能影响\n\n" +
		"---\n*此评估由 AI 生成，仅供参考。*\n"
	assert.Equal(t, want, FormatReport(v))
}

func TestReport(t *testing.T) {
	accepted := Report(&core.QualityVerdict{Score: 6, IsAcceptable: true})
	assert.Equal(t, "PR 质量评估通过", accepted.Title)
	assert.Equal(t, "PR 质量评分: 6/10，达到合格标准。", accepted.Summary)
	assert.Equal(t, core.ConclusionSuccess, accepted.Conclusion)

	rejected := Report(&core.QualityVerdict{Score: 3})
	assert.Equal(t, "PR 质量评估未通过", rejected.Title)
	assert.Equal(t, "PR 质量评分: 3/10，未达到合格标准。", rejected.Summary)
	assert.Equal(t, core.ConclusionFailure, rejected.Conclusion)
	assert.Contains(t, rejected.Text, "🚨")
}

func TestFailureReport(t *testing.T) {
	missing := FailureReport(&core.ConfigurationError{Missing: []string{"OPENAI_API_KEY"}})
	assert.Equal(t, "LLM 评估失败", missing.Title)
	assert.Contains(t, missing.Text, "OPENAI_API_KEY")
	assert.Equal(t, core.ConclusionFailure, missing.Conclusion)

	exhausted := FailureReport(&core.ProviderError{Provider: "openai", Attempts: 3, Err: errors.New("timeout")})
	assert.Equal(t, "无法获取有效的 LLM 响应。", exhausted.Summary)
	assert.Equal(t, core.ConclusionFailure, exhausted.Conclusion)
}

func TestOutputs(t *testing.T) {
	outputs := Outputs(core.CheckReport{Title: "t", Summary: "s", Text: "x\ny", Conclusion: core.ConclusionSuccess})
	keys := make([]string, len(outputs))
	for i, o := range outputs {
		keys[i] = o.Key
	}
	assert.Equal(t, []string{"llm_check_title", "llm_check_summary", "llm_check_conclusion", "llm_check_text"}, keys)
	assert.Equal(t, "success", outputs[2].Value)
}
