// Package core defines the data structures and errors shared by the
// validators, the evaluators and the GitHub reporting layer.
package core

import (
	"fmt"
	"strings"
)

// PullRequestMetadata is the title and body of a pull request as passed on
// the command line.
type PullRequestMetadata struct {
	Title string
	Body  string
}

// PullRequestRef identifies a pull request and the commit a check run is
// attached to.
type PullRequestRef struct {
	Owner   string
	Repo    string
	Number  int
	HeadSHA string
}

// FullName returns the "owner/repo" form of the repository.
func (r PullRequestRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

// SplitRepoFullName splits "owner/repo" into its two components.
func SplitRepoFullName(fullName string) (owner, repo string, err error) {
	parts := strings.Split(strings.TrimSpace(fullName), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository name %q, expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
