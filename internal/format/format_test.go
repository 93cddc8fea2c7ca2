package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/core"
)

func defaultRules(t *testing.T) Rules {
	t.Helper()
	rules, err := NewRules(config.DefaultTitlePattern, 50)
	require.NoError(t, err)
	return rules
}

func TestValidateTitle(t *testing.T) {
	rules := defaultRules(t)

	tests := []struct {
		title string
		valid bool
	}{
		{title: "[Feature] 添加用户认证功能", valid: true},
		{title: "[Fix] handle nil pointer in parser", valid: true},
		{title: "[Docs] x", valid: true},
		{title: "[Chore] bump deps", valid: true},
		{title: "Fix the parser", valid: false},
		{title: "[Feature]missing space", valid: false},
		{title: "[feature] wrong case", valid: false},
		{title: "[Feature] ", valid: false},
		{title: "prefix [Fix] not at start", valid: false},
		{title: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			v := ValidateTitle(tt.title, rules.TitlePattern)
			assert.Equal(t, tt.valid, v.TitleValid)
			if !tt.valid {
				assert.Contains(t, v.Message, "`"+tt.title+"`")
				assert.Contains(t, v.Message, config.DefaultTitlePattern)
			}
		})
	}
}

func TestValidateTitle_UnanchoredPatternMatchesAtStart(t *testing.T) {
	rules, err := NewRules(`(feat|fix): `, 50)
	require.NoError(t, err)

	assert.True(t, ValidateTitle("feat: add thing", rules.TitlePattern).TitleValid)
	assert.False(t, ValidateTitle("chore and feat: add thing", rules.TitlePattern).TitleValid)
}

func TestNewRules_InvalidPattern(t *testing.T) {
	_, err := NewRules(`[unclosed`, 50)
	assert.Error(t, err)
}

func TestValidateBody(t *testing.T) {
	structured := "## 变更内容\n修复了解析器在空输入时崩溃的问题，并补充了对应的回归测试用例。"
	plain := strings.Repeat("This change fixes the parser crash. ", 3)

	tests := []struct {
		name        string
		body        string
		wantValid   bool
		wantWarning bool
	}{
		{name: "empty", body: "", wantValid: false},
		{name: "whitespace only", body: strings.Repeat(" \n\t", 40), wantValid: false},
		{name: "short with heading", body: "## Summary\nshort", wantValid: false},
		{name: "49 chars after trim", body: "   " + strings.Repeat("a", 49) + "   ", wantValid: false},
		{name: "50 chars no heading", body: strings.Repeat("a", 50), wantValid: true, wantWarning: true},
		{name: "long plain text", body: plain, wantValid: true, wantWarning: true},
		{name: "chinese heading", body: structured + strings.Repeat("。", 30), wantValid: true},
		{name: "english heading", body: "# Summary\n" + plain, wantValid: true},
		{name: "ideographic space after hashes", body: "##\u3000变更内容\n" + plain, wantValid: true},
		{name: "no-break space after hashes", body: "#\u00a0Summary\n" + plain, wantValid: true},
		{name: "hash without space", body: "#123 " + plain, wantValid: true, wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateBody(tt.body, 50)
			assert.Equal(t, tt.wantValid, v.BodyValid)
			assert.Equal(t, tt.wantWarning, v.Warning != "")
			if !tt.wantValid {
				assert.Empty(t, v.Warning)
			}
		})
	}
}

func TestValidateBody_CountsCharactersNotBytes(t *testing.T) {
	body := strings.Repeat("验", 50)
	assert.True(t, ValidateBody(body, 50).BodyValid)
	assert.False(t, ValidateBody(strings.Repeat("验", 49), 50).BodyValid)
}

func TestValidate(t *testing.T) {
	rules := defaultRules(t)
	goodBody := "## Changes\n" + strings.Repeat("Describe the change in enough detail. ", 2)

	tests := []struct {
		name           string
		meta           core.PullRequestMetadata
		wantAccepted   bool
		wantConclusion core.Conclusion
	}{
		{
			name:           "both valid",
			meta:           core.PullRequestMetadata{Title: "[Fix] crash", Body: goodBody},
			wantAccepted:   true,
			wantConclusion: core.ConclusionSuccess,
		},
		{
			name:           "bad title",
			meta:           core.PullRequestMetadata{Title: "fix crash", Body: goodBody},
			wantConclusion: core.ConclusionFailure,
		},
		{
			name:           "bad body",
			meta:           core.PullRequestMetadata{Title: "[Fix] crash", Body: "too short"},
			wantConclusion: core.ConclusionFailure,
		},
		{
			name:           "warning only",
			meta:           core.PullRequestMetadata{Title: "[Fix] crash", Body: strings.Repeat("plain text ", 10)},
			wantAccepted:   true,
			wantConclusion: core.ConclusionSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.meta, rules)
			assert.Equal(t, tt.wantAccepted, result.Accepted())

			report := result.Report()
			assert.Equal(t, tt.wantConclusion, report.Conclusion)
			assert.NotEmpty(t, report.Title)
			assert.NotEmpty(t, report.Summary)
			assert.Equal(t, report, Validate(tt.meta, rules).Report(), "report must be deterministic")
		})
	}
}

func TestResult_ReportCarriesWarning(t *testing.T) {
	result := Validate(core.PullRequestMetadata{
		Title: "[Test] add coverage",
		Body:  strings.Repeat("no headings here ", 5),
	}, defaultRules(t))

	require.True(t, result.Accepted())
	assert.Contains(t, result.Report().Text, "PR 描述格式建议")
	assert.NotEmpty(t, result.Verdict().Warning)
}
