package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/pr-warden/internal/config"
)

const defaultAPIURL = "https://api.github.com"

// NewClientFromConfig picks the authentication method from configuration:
// a token when GITHUB_TOKEN is set, an App installation otherwise, and an
// anonymous client when neither is available.
func NewClientFromConfig(ctx context.Context, cfg *config.GitHubConfig, logger *slog.Logger) (Client, error) {
	switch {
	case cfg.Token != "":
		return NewPATClient(ctx, cfg.Token, cfg.APIURL, logger)
	case cfg.HasAppCredentials():
		return NewInstallationClient(cfg, logger)
	default:
		logger.Debug("no GitHub credentials configured, using anonymous client")
		return newClient(http.DefaultClient, cfg.APIURL, logger)
	}
}

// NewPATClient creates a new GitHub client authenticated with a Personal Access Token (PAT).
// In Actions this is the workflow GITHUB_TOKEN.
func NewPATClient(ctx context.Context, token, apiURL string, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return newClient(oauth2.NewClient(ctx, ts), apiURL, logger)
}

// NewInstallationClient creates a GitHub client that is authenticated as a
// specific application installation. Installation tokens are refreshed by
// the transport.
func NewInstallationClient(cfg *config.GitHubConfig, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "app_id", cfg.AppID, "installation_id", cfg.InstallationID)

	itr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	if cfg.APIURL != "" && cfg.APIURL != defaultAPIURL {
		itr.BaseURL = strings.TrimSuffix(cfg.APIURL, "/")
	}
	return newClient(&http.Client{Transport: itr}, cfg.APIURL, logger)
}

func newClient(httpClient *http.Client, apiURL string, logger *slog.Logger) (Client, error) {
	client := github.NewClient(httpClient)
	if apiURL != "" && apiURL != defaultAPIURL {
		base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GITHUB_API_URL %q: %w", apiURL, err)
		}
		client.BaseURL = base
	}
	return NewGitHubClient(client, logger), nil
}
