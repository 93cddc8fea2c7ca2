package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/core"
)

type fakeCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeCompleter) Provider() ModelProvider { return "fake" }

func (f *fakeCompleter) Complete(_ context.Context, _ string) (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("no more responses")
}

func parseAnswer(raw string) (qualityAnswer, error) {
	var a qualityAnswer
	err := DecodeStrict(raw, &a, "quality_score", "is_acceptable", "strengths", "explanation")
	return a, err
}

const validAnswer = `{"quality_score": 8, "is_acceptable": true, "strengths": [], "explanation": "fine"}`

func TestCompleteJSON(t *testing.T) {
	noDelay := RetryPolicy{MaxAttempts: 3}

	tests := []struct {
		name      string
		completer *fakeCompleter
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "first attempt succeeds",
			completer: &fakeCompleter{responses: []string{validAnswer}},
			wantCalls: 1,
		},
		{
			name: "transport error then success",
			completer: &fakeCompleter{
				errs:      []error{errors.New("503 service unavailable")},
				responses: []string{"", validAnswer},
			},
			wantCalls: 2,
		},
		{
			name:      "unparseable answers then success",
			completer: &fakeCompleter{responses: []string{"not json", `{"quality_score": 8}`, validAnswer}},
			wantCalls: 3,
		},
		{
			name:      "exhausted",
			completer: &fakeCompleter{responses: []string{"no", "still no", "never", validAnswer}},
			wantCalls: 3,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompleteJSON(context.Background(), tt.completer, noDelay, "test", "prompt", parseAnswer)
			assert.Equal(t, tt.wantCalls, tt.completer.calls)
			if tt.wantErr {
				var providerErr *core.ProviderError
				require.ErrorAs(t, err, &providerErr)
				assert.Equal(t, 3, providerErr.Attempts)
				var parseErr *core.ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 8, got.Score)
		})
	}
}

func TestRetryPolicy_StopsOnConfigurationError(t *testing.T) {
	calls := 0
	attempts, err := RetryPolicy{MaxAttempts: 5}.Do(context.Background(), "test", func(context.Context) error {
		calls++
		return &core.ConfigurationError{Missing: []string{"OPENAI_API_KEY"}}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	policy := RetryPolicy{MaxAttempts: 3, Delay: time.Hour}

	_, err := policy.Do(ctx, "test", func(context.Context) error {
		calls++
		cancel()
		return errors.New("boom")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_WaitsBetweenAttempts(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 2, Delay: 20 * time.Millisecond}
	start := time.Now()
	attempts, err := policy.Do(context.Background(), "test", func(context.Context) error {
		return errors.New("boom")
	})
	assert.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestDefaultRetryPolicy(t *testing.T) {
	assert.Equal(t, RetryPolicy{MaxAttempts: 3, Delay: 2 * time.Second}, DefaultRetryPolicy())
}
