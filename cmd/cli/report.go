package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-warden/internal/core"
)

const (
	defaultReportTitle   = "验证检查"
	defaultReportSummary = "执行了验证检查。"
	defaultReportText    = "没有详细信息可用。"
)

var (
	reportTitle      string
	reportSummary    string
	reportText       string
	reportConclusion string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Submit a result to the GitHub check runs API",
	Long: `Create a completed check run named CHECK_NAME on GITHUB_SHA in REPO_FULL_NAME.
Empty flags fall back to their defaults.

When the check run cannot be created the report is printed instead. The
command exits with status 0 when the check run was created or the
conclusion is success, and 1 otherwise.

Examples:
  pr-warden report --title "$TITLE" --summary "$SUMMARY" --text "$TEXT" --conclusion failure`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	flags := reportCmd.Flags()
	flags.StringVar(&reportTitle, "title", defaultReportTitle, "Check run title")
	flags.StringVar(&reportSummary, "summary", defaultReportSummary, "Check run summary")
	flags.StringVar(&reportText, "text", defaultReportText, "Check run details (Markdown)")
	flags.StringVar(&reportConclusion, "conclusion", string(core.ConclusionNeutral),
		"success, failure, neutral, cancelled, skipped or timed_out")
	rootCmd.AddCommand(reportCmd)
}

// buildReport applies the defaults to empty values and validates the
// conclusion.
func buildReport(title, summary, text, conclusion string) (core.CheckReport, error) {
	if conclusion == "" {
		conclusion = string(core.ConclusionNeutral)
	}
	c, err := core.ParseConclusion(conclusion)
	if err != nil {
		return core.CheckReport{}, err
	}
	return core.CheckReport{
		Title:      orDefault(title, defaultReportTitle),
		Summary:    orDefault(summary, defaultReportSummary),
		Text:       orDefault(text, defaultReportText),
		Conclusion: c,
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func runReport(cmd *cobra.Command, _ []string) error {
	report, err := buildReport(reportTitle, reportSummary, reportText, reportConclusion)
	if err != nil {
		return err
	}

	ctx, a, err := initApp(cmd)
	if err != nil {
		return err
	}

	a.Logger.Debug("submitting check run", "title", report.Title, "conclusion", report.Conclusion)
	result := a.Reporter.Submit(ctx, report)
	if result.Delivered {
		a.Console.Success("Check run submitted: %s", result.Detail)
		return nil
	}

	a.Console.Warning("无法提交检查结果，但仍将继续: %s", result.Detail)
	a.Console.Report(report)

	if report.Conclusion == core.ConclusionSuccess {
		return nil
	}
	return fmt.Errorf("check run not delivered: %s", result.Detail)
}
