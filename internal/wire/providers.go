package wire

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/app"
	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/console"
	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/github"
	"github.com/sevigo/pr-warden/internal/llm"
	"github.com/sevigo/pr-warden/internal/logger"
)

var AppSet = wire.NewSet(
	app.NewApp,
	config.LoadConfig,
	github.NewClientFromConfig,
	github.NewReporter,
	llm.NewPromptManager,
	console.New,
	provideSlogLogger,
	provideRepoConfig,
	provideGitHubConfig,
	provideOutputWriter,
)

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, nil)
}

func provideGitHubConfig(cfg *config.Config) *config.GitHubConfig {
	return &cfg.GitHub
}

func provideOutputWriter(cfg *config.Config) *actions.OutputWriter {
	return actions.NewOutputWriter(cfg.OutputPath)
}

// provideRepoConfig loads the repository overrides and applies them to cfg.
// A missing file is not an error.
func provideRepoConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*core.RepoConfig, error) {
	rc, err := config.LoadRepoConfig(cfg.RepoConfigPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		logger.DebugContext(ctx, "no repository config found, using defaults", "path", cfg.RepoConfigPath)
	}
	cfg.ApplyRepoConfig(rc)
	return rc, nil
}
