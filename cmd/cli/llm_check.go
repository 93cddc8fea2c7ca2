package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/console"
	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/quality"
)

var llmCheckReport bool

var llmCheckCmd = &cobra.Command{
	Use:   "llm-check <title> [body]",
	Short: "Score the pull request title and description with an LLM",
	Long: `Ask the configured LLM provider to score the pull request title and
description from 1 to 10. The pull request passes when the model finds it
acceptable; QUALITY_THRESHOLD is the score the model is told to require.

Results are written to GITHUB_OUTPUT as llm_check_title, llm_check_summary,
llm_check_text and llm_check_conclusion.

Examples:
  pr-warden llm-check "[Feature] add retry policy" "$PR_BODY"
  LLM_PROVIDER=anthropic pr-warden llm-check --report "$PR_TITLE" "$PR_BODY"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLLMCheck,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	llmCheckCmd.Flags().BoolVar(&llmCheckReport, "report", false, "Also submit the result as a check run")
	rootCmd.AddCommand(llmCheckCmd)
}

func runLLMCheck(cmd *cobra.Command, args []string) error {
	ctx, a, err := initApp(cmd)
	if err != nil {
		return err
	}

	meta := core.PullRequestMetadata{Title: args[0]}
	if len(args) > 1 {
		meta.Body = args[1]
	}

	completer, err := a.Completer(ctx)
	if err != nil {
		writeOutputs(a, quality.Outputs(quality.FailureReport(err))...)
		return err
	}

	a.Console.Info("使用 %s (%s) 评估 PR...", a.Cfg.LLM.Model, completer.Provider())
	evaluator := quality.NewEvaluator(completer, a.Prompts, a.RetryPolicy(), a.Cfg.Quality.Threshold, a.Logger)
	verdict, err := evaluator.Evaluate(ctx, meta)
	if err != nil {
		var provErr *core.ProviderError
		if errors.As(err, &provErr) {
			writeOutputs(a, quality.Outputs(quality.FailureReport(err))...)
		}
		return fmt.Errorf("failed to evaluate pull request: %w", err)
	}

	printQualityVerdict(a.Console, verdict, a.Cfg.Quality.Threshold)

	report := quality.Report(verdict)
	writeOutputs(a, append(quality.Outputs(report),
		actions.Output{Key: "llm_check_score", Value: fmt.Sprint(verdict.Score)},
	)...)
	if llmCheckReport {
		relay(ctx, a, report)
	}

	if !verdict.IsAcceptable {
		a.Console.Error("PR 质量不符合最低标准。请参考上述建议。")
		return core.ErrRejected
	}
	a.Console.Success("PR 质量符合最低标准。")
	return nil
}

func printQualityVerdict(p *console.Printer, v *core.QualityVerdict, threshold int) {
	acceptable := "否"
	if v.IsAcceptable {
		acceptable = "是"
	}
	p.Info("LLM 质量评分: %s", console.ScoreColor(v.Score, threshold))
	p.Info("是否可接受: %s", acceptable)
	p.List("\n优点:", v.Strengths)
	p.List("\n改进建议:", v.Suggestions)
	p.Info("评价: %s", v.Explanation)
}
