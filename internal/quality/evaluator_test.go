package quality

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/llm"
	"github.com/sevigo/pr-warden/mocks"
)

func newTestEvaluator(t *testing.T, completer llm.Completer) *Evaluator {
	t.Helper()
	pm, err := llm.NewPromptManager()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEvaluator(completer, pm, llm.RetryPolicy{MaxAttempts: 3}, 6, logger)
}

func TestEvaluator_Evaluate(t *testing.T) {
	meta := core.PullRequestMetadata{
		Title: "[Fix] handle empty config",
		Body:  "## 变更内容\nLoadConfig no longer panics on an empty file.",
	}

	tests := []struct {
		name           string
		answers        []string
		wantScore      int
		wantAcceptable bool
	}{
		{
			name:           "score at threshold is accepted",
			answers:        []string{`{"quality_score": 6, "is_acceptable": true, "strengths": ["clear title"], "improvement_suggestions": [], "explanation": "ok"}`},
			wantScore:      6,
			wantAcceptable: true,
		},
		{
			name:           "low score is rejected",
			answers:        []string{`{"quality_score": 3, "is_acceptable": false, "strengths": [], "improvement_suggestions": ["explain why"], "explanation": "too short"}`},
			wantScore:      3,
			wantAcceptable: false,
		},
		{
			name: "fenced answer after a malformed one",
			answers: []string{
				"I think this PR is fine.",
				"```json\n{\"quality_score\": 9, \"is_acceptable\": true, \"strengths\": [], \"improvement_suggestions\": [], \"explanation\": \"great\"}\n```",
			},
			wantScore:      9,
			wantAcceptable: true,
		},
		{
			name:           "inconsistent flag is kept",
			answers:        []string{`{"quality_score": 4, "is_acceptable": true, "strengths": [], "improvement_suggestions": [], "explanation": "lenient"}`},
			wantScore:      4,
			wantAcceptable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			completer := mocks.NewMockCompleter(ctrl)
			completer.EXPECT().Provider().Return(llm.OpenAIProvider).AnyTimes()

			calls := make([]any, 0, len(tt.answers))
			for _, answer := range tt.answers {
				calls = append(calls, completer.EXPECT().
					Complete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, prompt string) (string, error) {
						assert.Contains(t, prompt, meta.Title)
						assert.Contains(t, prompt, meta.Body)
						assert.Contains(t, prompt, "quality_score")
						return answer, nil
					}))
			}
			gomock.InOrder(calls...)

			verdict, err := newTestEvaluator(t, completer).Evaluate(context.Background(), meta)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, verdict.Score)
			assert.Equal(t, tt.wantAcceptable, verdict.IsAcceptable)
		})
	}
}

func TestEvaluator_Exhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().Provider().Return(llm.OpenAIProvider).AnyTimes()
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`{"quality_score": 11}`, nil).Times(1)
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("", errors.New("503 service unavailable")).Times(2)

	verdict, err := newTestEvaluator(t, completer).Evaluate(context.Background(), core.PullRequestMetadata{Title: "t"})
	require.Error(t, err)
	assert.Nil(t, verdict)

	var provErr *core.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, 3, provErr.Attempts)
	assert.Equal(t, "openai", provErr.Provider)
}

func TestEvaluator_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := mocks.NewMockCompleter(ctrl)
	completer.EXPECT().Provider().Return(llm.OpenAIProvider).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	completer.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) (string, error) {
		cancel()
		return "", context.Canceled
	})

	_, err := newTestEvaluator(t, completer).Evaluate(ctx, core.PullRequestMetadata{Title: "t"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name: "valid",
			raw:  `{"quality_score": 7, "is_acceptable": true, "strengths": ["a"], "improvement_suggestions": ["b"], "explanation": "c"}`,
		},
		{
			name:      "score too high",
			raw:       `{"quality_score": 11, "is_acceptable": true, "strengths": [], "improvement_suggestions": [], "explanation": "c"}`,
			wantField: "quality_score",
		},
		{
			name:      "score zero",
			raw:       `{"quality_score": 0, "is_acceptable": false, "strengths": [], "improvement_suggestions": [], "explanation": "c"}`,
			wantField: "quality_score",
		},
		{
			name:      "missing explanation",
			raw:       `{"quality_score": 7, "is_acceptable": true, "strengths": [], "improvement_suggestions": []}`,
			wantField: "explanation",
		},
		{
			name:      "null suggestions",
			raw:       `{"quality_score": 7, "is_acceptable": true, "strengths": [], "improvement_suggestions": null, "explanation": "c"}`,
			wantField: "improvement_suggestions",
		},
		{
			name:      "score as text",
			raw:       `{"quality_score": "seven", "is_acceptable": true, "strengths": [], "improvement_suggestions": [], "explanation": "c"}`,
			wantField: "quality_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVerdict(tt.raw)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, 7, v.Score)
				return
			}
			var parseErr *core.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.True(t, strings.Contains(parseErr.Field, tt.wantField), "field %q", parseErr.Field)
		})
	}
}
