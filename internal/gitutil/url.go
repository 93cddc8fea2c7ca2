// Package gitutil locates the pull request a command operates on.
package gitutil

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/pr-warden/internal/core"
)

// Matches .../{owner}/{repo}/pull/{number} with an optional tab such as
// /files or /commits. The host is not checked so GitHub Enterprise URLs work.
var prPathRegex = regexp.MustCompile(`^/([^/]+)/([^/]+)/pull/(\d+)(?:/(?:files|commits|checks))?$`)

// ErrNoPullRequest is returned when neither a URL nor the environment names
// a pull request.
var ErrNoPullRequest = errors.New("no pull request given: pass a URL or set REPO_FULL_NAME and PR_NUMBER")

// ParsePullRequestURL parses a pull request URL such as
// https://github.com/{owner}/{repo}/pull/{number}.
func ParsePullRequestURL(raw string) (core.PullRequestRef, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return core.PullRequestRef{}, fmt.Errorf("invalid pull request URL format: %s", raw)
	}

	matches := prPathRegex.FindStringSubmatch(strings.TrimSuffix(u.Path, "/"))
	if len(matches) != 4 {
		return core.PullRequestRef{}, fmt.Errorf("invalid pull request URL format: %s", raw)
	}

	number, err := strconv.Atoi(matches[3])
	if err != nil || number <= 0 {
		return core.PullRequestRef{}, fmt.Errorf("invalid PR number '%s'", matches[3])
	}

	return core.PullRequestRef{Owner: matches[1], Repo: matches[2], Number: number}, nil
}

// ResolvePullRequest picks the pull request from a URL argument when one is
// given, otherwise from the repository and number in the environment.
func ResolvePullRequest(arg, repoFullName string, prNumber int) (core.PullRequestRef, error) {
	if strings.TrimSpace(arg) != "" {
		return ParsePullRequestURL(arg)
	}
	if repoFullName == "" || prNumber <= 0 {
		return core.PullRequestRef{}, ErrNoPullRequest
	}
	owner, repo, err := core.SplitRepoFullName(repoFullName)
	if err != nil {
		return core.PullRequestRef{}, err
	}
	return core.PullRequestRef{Owner: owner, Repo: repo, Number: prNumber}, nil
}
