// Package review runs the per-file LLM code review of a pull request and
// publishes the results as pull request reviews.
package review

import (
	"context"
	"errors"
	"log/slog"
	"path"
	"strings"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/github"
	"github.com/sevigo/pr-warden/internal/llm"
)

const operation = "code review"

// DefaultMaxFiles bounds how many changed files are considered per run.
const DefaultMaxFiles = 10

// DefaultScoreThreshold is the lowest score a file may get without being
// counted as low quality.
const DefaultScoreThreshold = 6

// Options controls which files are reviewed and how they are judged.
type Options struct {
	MaxFiles           int
	ScoreThreshold     int
	ExcludeDirs        []string
	ExcludeExts        []string
	CustomInstructions []string
}

// Reviewer reviews changed files one at a time.
type Reviewer struct {
	gh        github.Client
	completer llm.Completer
	prompts   *llm.PromptManager
	policy    llm.RetryPolicy
	logger    *slog.Logger
}

func NewReviewer(gh github.Client, completer llm.Completer, prompts *llm.PromptManager, policy llm.RetryPolicy, logger *slog.Logger) *Reviewer {
	return &Reviewer{
		gh:        gh,
		completer: completer,
		prompts:   prompts,
		policy:    policy,
		logger:    logger,
	}
}

// ReviewChangedFiles reviews at most opts.MaxFiles of files and aggregates
// the results. Files that cannot be fetched or reviewed are counted as failed
// and do not stop the run; only context cancellation is returned as an error.
func (r *Reviewer) ReviewChangedFiles(ctx context.Context, files []github.ChangedFile, opts Options) (*core.ReviewSummary, error) {
	if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
		r.logger.Info("limiting review to the first changed files", "changed", len(files), "max_files", opts.MaxFiles)
		files = files[:opts.MaxFiles]
	}
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = DefaultScoreThreshold
	}

	schema, err := llm.SchemaJSON(&core.FileReview{})
	if err != nil {
		return nil, err
	}

	summary := &core.ReviewSummary{ConsideredFiles: len(files)}
	for _, file := range files {
		if reason := skipReason(file, opts); reason != "" {
			r.logger.Info("skipping file", "file", file.Filename, "reason", reason)
			summary.SkippedFiles++
			continue
		}

		review, err := r.reviewFile(ctx, file, schema, opts.CustomInstructions)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Error("failed to review file", "file", file.Filename, "error", err)
			summary.FailedFiles++
			continue
		}

		summary.ReviewedFiles++
		summary.TotalIssues += len(review.Issues)
		for _, issue := range review.Issues {
			if issue.Severity == core.SeverityHigh {
				summary.HighSeverityIssues++
			}
		}
		if review.Score < opts.ScoreThreshold {
			summary.LowQualityFiles++
		}
		summary.Files = append(summary.Files, *review)
	}

	summary.Conclusion = Conclude(summary)
	r.logger.Info("code review finished",
		"considered", summary.ConsideredFiles,
		"reviewed", summary.ReviewedFiles,
		"skipped", summary.SkippedFiles,
		"failed", summary.FailedFiles,
		"issues", summary.TotalIssues,
		"high_severity", summary.HighSeverityIssues,
		"low_quality", summary.LowQualityFiles,
		"conclusion", summary.Conclusion,
	)
	return summary, nil
}

func (r *Reviewer) reviewFile(ctx context.Context, file github.ChangedFile, schema string, instructions []string) (*core.FileReview, error) {
	r.logger.Info("reviewing file", "file", file.Filename, "status", file.Status)
	if !file.HasPatch() {
		r.logger.Info("no patch for file, reviewing full content only", "file", file.Filename,
			"additions", file.Additions, "deletions", file.Deletions)
	}

	content, err := r.gh.GetRawContent(ctx, file.RawURL)
	if err != nil {
		return nil, err
	}

	prompt, err := r.prompts.Render(llm.CodeReviewPrompt, r.completer.Provider(), llm.CodeReviewPromptData{
		FileName:           file.Filename,
		Language:           llm.LanguageFor(file.Filename),
		Content:            content,
		Patch:              file.Patch,
		Schema:             schema,
		CustomInstructions: instructions,
	})
	if err != nil {
		return nil, err
	}

	review, err := llm.CompleteJSON(ctx, r.completer, r.policy, operation, prompt, ParseFileReview)
	if err != nil {
		var provErr *core.ProviderError
		if errors.As(err, &provErr) {
			r.logger.Warn("no usable review from provider", "file", file.Filename, "attempts", provErr.Attempts)
		}
		return nil, err
	}
	review.FileName = file.Filename
	return &review, nil
}

// Conclude applies the aggregate policy: any high severity issue or low
// quality file fails the review, otherwise it succeeds if at least one file
// was reviewed and is neutral when nothing was reviewable.
func Conclude(s *core.ReviewSummary) core.Conclusion {
	switch {
	case s.HighSeverityIssues > 0 || s.LowQualityFiles > 0:
		return core.ConclusionFailure
	case s.ReviewedFiles > 0:
		return core.ConclusionSuccess
	default:
		return core.ConclusionNeutral
	}
}

func skipReason(f github.ChangedFile, opts Options) string {
	switch {
	case f.IsRemoved():
		return "removed"
	case f.IsBinary():
		return "binary"
	case excludedDir(f.Filename, opts.ExcludeDirs):
		return "excluded directory"
	case excludedExt(f.Filename, opts.ExcludeExts):
		return "excluded extension"
	default:
		return ""
	}
}

func excludedDir(file string, dirs []string) bool {
	for _, dir := range dirs {
		dir = strings.Trim(strings.TrimPrefix(dir, "./"), "/")
		if dir != "" && strings.HasPrefix(file, dir+"/") {
			return true
		}
	}
	return false
}

func excludedExt(file string, exts []string) bool {
	ext := strings.ToLower(path.Ext(file))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}
