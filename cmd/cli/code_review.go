package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/gitutil"
	"github.com/sevigo/pr-warden/internal/review"
)

var (
	codeReviewReport bool
	codeReviewDryRun bool
	codeReviewMax    int
)

var codeReviewCmd = &cobra.Command{
	Use:   "code-review [pr-url]",
	Short: "Review the changed files of a pull request with an LLM",
	Long: `Review each changed file of a pull request with the configured LLM provider
and post the findings as pull request reviews with inline comments, followed
by a summary comment.

The pull request is taken from the URL argument or from REPO_FULL_NAME and
PR_NUMBER. At most MAX_FILES_TO_REVIEW files are considered. The command
exits with status 1 when a high severity issue is found or a file scores
below REVIEW_THRESHOLD.

Examples:
  pr-warden code-review https://github.com/owner/repo/pull/123
  pr-warden code-review --dry-run --max-files 3 https://github.com/owner/repo/pull/123
  PR_NUMBER=123 REPO_FULL_NAME=owner/repo pr-warden code-review --report`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCodeReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	codeReviewCmd.Flags().BoolVar(&codeReviewReport, "report", false, "Also submit the summary as a check run")
	codeReviewCmd.Flags().BoolVar(&codeReviewDryRun, "dry-run", false, "Print the review without posting comments")
	codeReviewCmd.Flags().IntVar(&codeReviewMax, "max-files", 0, "Override MAX_FILES_TO_REVIEW")
	rootCmd.AddCommand(codeReviewCmd)
}

func runCodeReview(cmd *cobra.Command, args []string) error {
	ctx, a, err := initApp(cmd)
	if err != nil {
		return err
	}

	if err := a.Cfg.RequireGitHub(); err != nil {
		return err
	}

	var prURL string
	if len(args) > 0 {
		prURL = args[0]
	}
	ref, err := gitutil.ResolvePullRequest(prURL, a.Cfg.GitHub.Repository, a.Cfg.GitHub.PRNumber)
	if err != nil {
		return fmt.Errorf("invalid pull request: %w", err)
	}

	completer, err := a.Completer(ctx)
	if err != nil {
		return err
	}

	a.Console.Banner(fmt.Sprintf("🔍 代码审查 %s#%d", ref.FullName(), ref.Number))

	pr, err := a.GitHub.GetPullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return fmt.Errorf("failed to fetch pull request: %w", err)
	}
	ref.HeadSHA = pr.GetHead().GetSHA()

	files, err := a.GitHub.GetChangedFiles(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return fmt.Errorf("failed to fetch changed files: %w", err)
	}
	diff, err := a.GitHub.GetPullRequestDiff(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return fmt.Errorf("failed to fetch pull request diff: %w", err)
	}
	lines, err := review.ParseDiffLines(diff)
	if err != nil {
		a.Logger.Warn("diff could not be parsed, findings stay in review bodies", "error", err)
		lines = review.LineMap{}
	}
	a.Console.Dim("PR #%d: %s (%d changed files)", ref.Number, pr.GetTitle(), len(files))

	opts := review.Options{
		MaxFiles:           a.Cfg.Review.MaxFiles,
		ScoreThreshold:     a.Cfg.Review.ScoreThreshold,
		ExcludeDirs:        a.RepoConfig.ExcludeDirs,
		ExcludeExts:        a.RepoConfig.ExcludeExts,
		CustomInstructions: a.RepoConfig.CustomInstructions,
	}
	if codeReviewMax > 0 {
		opts.MaxFiles = codeReviewMax
	}

	reviewer := review.NewReviewer(a.GitHub, completer, a.Prompts, a.RetryPolicy(), a.Logger)
	summary, err := reviewer.ReviewChangedFiles(ctx, files, opts)
	if err != nil {
		return fmt.Errorf("code review interrupted: %w", err)
	}

	if len(summary.Files) > 0 {
		if err := a.Console.ReviewTable(summary.Files, opts.ScoreThreshold); err != nil {
			a.Logger.Warn("failed to render review table", "error", err)
		}
	}

	if codeReviewDryRun {
		a.Console.Info("Dry run: nothing posted to the pull request")
		for i := range summary.Files {
			a.Console.Markdown(review.FormatFileComment(&summary.Files[i]))
		}
	} else if err := review.NewPublisher(a.GitHub, a.Logger).Publish(ctx, ref, summary, lines); err != nil {
		a.Console.Warning("Some review comments could not be posted: %v", err)
	}

	report := review.Report(summary)
	writeOutputs(a, review.Outputs(summary, report)...)
	if codeReviewReport {
		a.UseCheckRunTarget(ref)
		relay(ctx, a, report)
	}

	a.Console.Markdown(review.FormatSummaryComment(summary))
	if summary.Conclusion == core.ConclusionFailure {
		a.Console.Error("发现高严重性问题或低质量文件，请查看 PR 评论获取详细信息。")
		return core.ErrRejected
	}
	a.Console.Success("代码审查完成。")
	return nil
}
