package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/core"
)

func TestBuildReport(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		summary    string
		text       string
		conclusion string
		want       core.CheckReport
		wantErr    bool
	}{
		{
			name: "empty values use defaults",
			want: core.CheckReport{
				Title:      "验证检查",
				Summary:    "执行了验证检查。",
				Text:       "没有详细信息可用。",
				Conclusion: core.ConclusionNeutral,
			},
		},
		{
			name:       "values are kept",
			title:      "PR 质量评估通过",
			summary:    "s",
			text:       "t",
			conclusion: "success",
			want:       core.CheckReport{Title: "PR 质量评估通过", Summary: "s", Text: "t", Conclusion: core.ConclusionSuccess},
		},
		{
			name:       "timed out",
			conclusion: "timed_out",
			want: core.CheckReport{
				Title:      "验证检查",
				Summary:    "执行了验证检查。",
				Text:       "没有详细信息可用。",
				Conclusion: core.ConclusionTimedOut,
			},
		},
		{
			name:       "conclusion is case sensitive",
			conclusion: "SUCCESS",
			wantErr:    true,
		},
		{
			name:       "unknown conclusion",
			conclusion: "passed",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildReport(tt.title, tt.summary, tt.text, tt.conclusion)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportOutputs(t *testing.T) {
	outputs := reportOutputs("format_check", core.CheckReport{Title: "t", Summary: "s", Text: "x", Conclusion: core.ConclusionFailure})
	require.Len(t, outputs, 4)
	assert.Equal(t, "format_check_title", outputs[0].Key)
	assert.Equal(t, "format_check_conclusion", outputs[2].Key)
	assert.Equal(t, "failure", outputs[2].Value)
}
