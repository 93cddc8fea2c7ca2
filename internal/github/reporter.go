package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/core"
)

// maxOutputChars is the check-runs API limit for output.summary and output.text.
const maxOutputChars = 65535

const truncationNotice = "\n\n… (truncated)"

// Reporter relays a CheckReport to the hosting platform. Delivery is best
// effort: the outcome is described by the returned DeliveryResult and never
// turned into an error.
//
//go:generate mockgen -destination=../../mocks/mock_github_reporter.go -package=mocks . Reporter
type Reporter interface {
	Submit(ctx context.Context, report core.CheckReport) core.DeliveryResult
}

type checkRunReporter struct {
	client     Client
	name       string
	repository string
	headSHA    string
	missing    []string
	logger     *slog.Logger
	now        func() time.Time
}

// NewReporter creates a Reporter that posts completed check runs for the
// commit named by GITHUB_SHA in REPO_FULL_NAME.
func NewReporter(client Client, cfg *config.Config, logger *slog.Logger) Reporter {
	return &checkRunReporter{
		client:     client,
		name:       cfg.GitHub.CheckName,
		repository: cfg.GitHub.Repository,
		headSHA:    cfg.GitHub.SHA,
		missing:    cfg.MissingCheckRunContext(),
		logger:     logger,
		now:        time.Now,
	}
}

// Submit creates a completed check run. Only a 201 response counts as delivered.
func (r *checkRunReporter) Submit(ctx context.Context, report core.CheckReport) core.DeliveryResult {
	if len(r.missing) > 0 {
		detail := "check run context incomplete, missing " + strings.Join(r.missing, ", ")
		r.logger.Warn("skipping check run submission", "missing", r.missing)
		return core.DeliveryResult{Detail: detail}
	}

	owner, repo, err := core.SplitRepoFullName(r.repository)
	if err != nil {
		return core.DeliveryResult{Detail: err.Error()}
	}

	opts := github.CreateCheckRunOptions{
		Name:        r.name,
		HeadSHA:     r.headSHA,
		Status:      github.Ptr("completed"),
		Conclusion:  github.Ptr(string(report.Conclusion)),
		CompletedAt: &github.Timestamp{Time: r.now()},
		Output: &github.CheckRunOutput{
			Title:   github.Ptr(report.Title),
			Summary: github.Ptr(truncate(report.Summary, maxOutputChars)),
			Text:    github.Ptr(truncate(report.Text, maxOutputChars)),
		},
	}

	r.logger.Debug("GitHub API: creating check run", "repo", r.repository, "sha", r.headSHA, "name", r.name, "conclusion", report.Conclusion)
	checkRun, status, err := r.client.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		return core.DeliveryResult{StatusCode: status, Detail: err.Error()}
	}
	if status != http.StatusCreated {
		return core.DeliveryResult{StatusCode: status, Detail: fmt.Sprintf("unexpected response status %d", status)}
	}

	r.logger.Info("check run created", "id", checkRun.GetID(), "url", checkRun.GetHTMLURL())
	return core.DeliveryResult{
		Delivered:  true,
		StatusCode: status,
		Detail:     fmt.Sprintf("check run %q created", r.name),
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	keep := limit - len([]rune(truncationNotice))
	return string(runes[:keep]) + truncationNotice
}
