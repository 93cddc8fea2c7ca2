// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/pr-warden/internal/core"
)

// Changed file statuses reported by the pull request files API.
const (
	FileStatusAdded    = "added"
	FileStatusModified = "modified"
	FileStatusRemoved  = "removed"
	FileStatusRenamed  = "renamed"
)

// ChangedFile holds the metadata and patch of a single file included in a
// pull request.
type ChangedFile struct {
	Filename         string
	PreviousFilename string
	Status           string
	Patch            string
	RawURL           string
	Additions        int
	Deletions        int
}

// IsRemoved reports whether the pull request deletes the file.
func (f ChangedFile) IsRemoved() bool {
	return f.Status == FileStatusRemoved
}

// IsBinary reports whether the file is not text. GitHub omits the patch of
// binary files and counts no changed lines for them; a few well known
// extensions are matched as well. A text file whose diff was too large for a
// patch still has line counts and is not binary.
func (f ChangedFile) IsBinary() bool {
	if binaryExtensions[strings.ToLower(path.Ext(f.Filename))] {
		return true
	}
	return !f.HasPatch() && f.Additions == 0 && f.Deletions == 0 && f.Status != FileStatusRenamed
}

// HasPatch reports whether GitHub returned a textual diff for the file.
func (f ChangedFile) HasPatch() bool {
	return f.Patch != ""
}

var binaryExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".jar": true, ".exe": true,
	".so": true, ".dll": true, ".dylib": true, ".woff": true, ".woff2": true, ".ttf": true,
}

// DraftReviewComment represents a single comment to be posted as part of a review.
type DraftReviewComment struct {
	Path string
	Line int
	Body string
}

// Client defines a set of operations for interacting with the GitHub API,
// focusing on pull requests, comments, and check runs.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error)
	GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]ChangedFile, error)
	GetRawContent(ctx context.Context, rawURL string) (string, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CreateReview(ctx context.Context, owner, repo string, number int, headSHA, body string, comments []DraftReviewComment) error
	CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, int, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for application-specific GitHub operations.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// CreateReview creates a new pull request review with a summary and line-specific comments.
// Comments always target the new side of the diff.
func (g *gitHubClient) CreateReview(ctx context.Context, owner, repo string, number int, headSHA, body string, comments []DraftReviewComment) error {
	ghComments := make([]*github.DraftReviewComment, 0, len(comments))
	for _, c := range comments {
		ghComments = append(ghComments, &github.DraftReviewComment{
			Path: github.Ptr(c.Path),
			Line: github.Ptr(c.Line),
			Side: github.Ptr("RIGHT"),
			Body: github.Ptr(c.Body),
		})
	}

	reviewRequest := &github.PullRequestReviewRequest{
		Body:     &body,
		Event:    github.Ptr("COMMENT"),
		Comments: ghComments,
	}
	if headSHA != "" {
		reviewRequest.CommitID = github.Ptr(headSHA)
	}

	_, resp, err := g.client.PullRequests.CreateReview(ctx, owner, repo, number, reviewRequest)
	if err != nil {
		g.logger.Error("failed to create pull request review", "owner", owner, "repo", repo, "pr", number, "error", err)
		return collaboratorError("create pull request review", resp, err)
	}
	return nil
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, resp, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, collaboratorError("get pull request", resp, err)
	}
	return pr, nil
}

// GetPullRequestDiff retrieves the diff of a pull request as a string.
func (g *gitHubClient) GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, resp, err := g.client.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{
		Type: github.Diff,
	})
	if err != nil {
		g.logger.Error("failed to get pull request diff", "owner", owner, "repo", repo, "pr", number, "error", err)
		return "", collaboratorError("get pull request diff", resp, err)
	}
	return diff, nil
}

// GetChangedFiles retrieves the list of files modified in a pull request.
// It handles pagination automatically to ensure all files are fetched
// from the GitHub API, which returns a maximum of 100 files per page.
func (g *gitHubClient) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]ChangedFile, error) {
	var allFiles []ChangedFile
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, collaboratorError("list changed files", resp, err)
		}

		for _, file := range files {
			allFiles = append(allFiles, ChangedFile{
				Filename:         file.GetFilename(),
				PreviousFilename: file.GetPreviousFilename(),
				Status:           file.GetStatus(),
				Patch:            file.GetPatch(),
				RawURL:           file.GetRawURL(),
				Additions:        file.GetAdditions(),
				Deletions:        file.GetDeletions(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// GetRawContent downloads a file from its raw URL using the authenticated
// transport, so private repositories work as well.
func (g *gitHubClient) GetRawContent(ctx context.Context, rawURL string) (string, error) {
	req, err := g.client.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", collaboratorError("fetch raw content", nil, err)
	}
	req.Header.Set("Accept", "application/vnd.github.raw")

	var buf bytes.Buffer
	resp, err := g.client.Do(ctx, req, &buf)
	if err != nil {
		g.logger.Error("failed to fetch raw content", "url", rawURL, "error", err)
		return "", collaboratorError("fetch raw content", resp, err)
	}
	return buf.String(), nil
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, resp, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
		return collaboratorError("create comment", resp, err)
	}
	return nil
}

// CreateCheckRun creates a new check run and returns the HTTP status of the
// response alongside it. The status is zero when no response was received.
func (g *gitHubClient) CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, int, error) {
	checkRun, resp, err := g.client.Checks.CreateCheckRun(ctx, owner, repo, opts)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		g.logger.Error("failed to create check run", "owner", owner, "repo", repo, "status", status, "error", err)
		return nil, status, collaboratorError("create check run", resp, err)
	}
	return checkRun, status, nil
}

func collaboratorError(op string, resp *github.Response, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	cerr := &core.CollaboratorError{Operation: op, Err: err}
	if resp != nil {
		cerr.StatusCode = resp.StatusCode
	}
	return cerr
}
