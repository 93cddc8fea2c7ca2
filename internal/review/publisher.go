package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/github"
)

// Publisher posts review results to the pull request.
type Publisher struct {
	gh     github.Client
	logger *slog.Logger
}

func NewPublisher(gh github.Client, logger *slog.Logger) *Publisher {
	return &Publisher{gh: gh, logger: logger}
}

// Publish posts one review per reviewed file and a summary comment. Issues
// on lines of the diff become inline comments. Publishing is best effort:
// every post is attempted and the failures are returned joined.
func (p *Publisher) Publish(ctx context.Context, ref core.PullRequestRef, summary *core.ReviewSummary, lines LineMap) error {
	var errs []error

	for i := range summary.Files {
		fr := &summary.Files[i]
		inline, _ := SplitIssuesByLine(p.logger, fr.FileName, fr.Issues, lines)

		comments := make([]github.DraftReviewComment, 0, len(inline))
		for _, issue := range inline {
			comments = append(comments, github.DraftReviewComment{
				Path: fr.FileName,
				Line: int(issue.LineNumber),
				Body: FormatInlineComment(issue),
			})
		}

		p.logger.Debug("GitHub API: creating review", "file", fr.FileName, "inline_comments", len(comments))
		if err := p.gh.CreateReview(ctx, ref.Owner, ref.Repo, ref.Number, ref.HeadSHA, FormatFileComment(fr), comments); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("failed to post file review", "file", fr.FileName, "error", err)
			errs = append(errs, fmt.Errorf("failed to post review for %s: %w", fr.FileName, err))
		}
	}

	if err := p.gh.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, FormatSummaryComment(summary)); err != nil {
		p.logger.Warn("failed to post review summary", "error", err)
		errs = append(errs, fmt.Errorf("failed to post review summary: %w", err))
	}
	return errors.Join(errs...)
}
