// Package quality scores pull request titles and descriptions with an LLM.
package quality

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/llm"
)

const operation = "pr quality evaluation"

var verdictFields = llm.RequiredFields(&core.QualityVerdict{})

// Evaluator asks the completion provider for a QualityVerdict.
type Evaluator struct {
	completer llm.Completer
	prompts   *llm.PromptManager
	policy    llm.RetryPolicy
	threshold int
	logger    *slog.Logger
}

// NewEvaluator creates an Evaluator. threshold is the minimum acceptable
// score and is stated in the prompt.
func NewEvaluator(completer llm.Completer, prompts *llm.PromptManager, policy llm.RetryPolicy, threshold int, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		completer: completer,
		prompts:   prompts,
		policy:    policy,
		threshold: threshold,
		logger:    logger,
	}
}

// Evaluate scores meta. Every rejected or failed answer is retried under the
// configured policy; exhaustion yields a *core.ProviderError.
func (e *Evaluator) Evaluate(ctx context.Context, meta core.PullRequestMetadata) (*core.QualityVerdict, error) {
	schema, err := llm.SchemaJSON(&core.QualityVerdict{})
	if err != nil {
		return nil, err
	}

	prompt, err := e.prompts.Render(llm.QualityPrompt, e.completer.Provider(), llm.QualityPromptData{
		Title:     meta.Title,
		Body:      meta.Body,
		Threshold: e.threshold,
		Schema:    schema,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render quality prompt: %w", err)
	}

	e.logger.Info("evaluating pull request quality", "provider", e.completer.Provider(), "title", meta.Title, "body_length", len([]rune(meta.Body)))

	verdict, err := llm.CompleteJSON(ctx, e.completer, e.policy, operation, prompt, ParseVerdict)
	if err != nil {
		return nil, err
	}

	if !verdict.Consistent(e.threshold) {
		e.logger.Warn("model acceptance disagrees with score threshold",
			"score", verdict.Score,
			"threshold", e.threshold,
			"is_acceptable", verdict.IsAcceptable,
		)
	}
	return &verdict, nil
}

// ParseVerdict decodes a model answer into a QualityVerdict. All fields are
// required and the score must lie in [1,10].
func ParseVerdict(raw string) (core.QualityVerdict, error) {
	var v core.QualityVerdict
	if err := llm.DecodeStrict(raw, &v, verdictFields...); err != nil {
		return core.QualityVerdict{}, err
	}
	if v.Score < 1 || v.Score > 10 {
		return core.QualityVerdict{}, &core.ParseError{Field: "quality_score", Reason: fmt.Sprintf("is %d, expected 1 to 10", v.Score)}
	}
	return v, nil
}
