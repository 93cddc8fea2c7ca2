// Package app holds the components shared by every command, assembled once
// per process from configuration.
package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/console"
	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/github"
	"github.com/sevigo/pr-warden/internal/llm"
)

// App holds the main application components.
type App struct {
	Cfg        *config.Config
	RepoConfig *core.RepoConfig
	Logger     *slog.Logger
	GitHub     github.Client
	Reporter   github.Reporter
	Prompts    *llm.PromptManager
	Output     *actions.OutputWriter
	Console    *console.Printer

	// CompleterFactory builds the completion client. NewApp sets it to
	// llm.NewCompleter.
	CompleterFactory func(context.Context, *config.LLMConfig, *slog.Logger) (llm.Completer, error)
}

// NewApp sets up the application with all its dependencies.
func NewApp(
	cfg *config.Config,
	repoCfg *core.RepoConfig,
	logger *slog.Logger,
	gh github.Client,
	reporter github.Reporter,
	prompts *llm.PromptManager,
	output *actions.OutputWriter,
	printer *console.Printer,
) *App {
	return &App{
		Cfg:              cfg,
		RepoConfig:       repoCfg,
		Logger:           logger,
		GitHub:           gh,
		Reporter:         reporter,
		Prompts:          prompts,
		Output:           output,
		Console:          printer,
		CompleterFactory: llm.NewCompleter,
	}
}

// Completer creates the completion client of the configured provider. It is
// built on demand because only the LLM commands need a key.
func (a *App) Completer(ctx context.Context) (llm.Completer, error) {
	if err := a.Cfg.RequireLLM(); err != nil {
		return nil, err
	}
	return a.CompleterFactory(ctx, &a.Cfg.LLM, a.Logger)
}

// RetryPolicy returns the configured retry policy for completion calls.
func (a *App) RetryPolicy() llm.RetryPolicy {
	return llm.NewRetryPolicy(&a.Cfg.LLM)
}

// Relay submits report as a check run when the check run context is
// configured. Without it the report is only printed by the caller.
func (a *App) Relay(ctx context.Context, report core.CheckReport) core.DeliveryResult {
	if missing := a.Cfg.MissingCheckRunContext(); len(missing) > 0 {
		a.Logger.Debug("check run context not configured, report not relayed", "missing", missing)
		return core.DeliveryResult{Detail: "check run context incomplete, missing " + strings.Join(missing, ", ")}
	}
	result := a.Reporter.Submit(ctx, report)
	if !result.Delivered {
		a.Logger.Warn("check run not delivered", "status", result.StatusCode, "detail", result.Detail)
	}
	return result
}

// UseCheckRunTarget fills the check run repository and commit from ref when
// the environment leaves them empty, so a pull request given by URL can
// still be reported on.
func (a *App) UseCheckRunTarget(ref core.PullRequestRef) {
	changed := false
	if a.Cfg.GitHub.Repository == "" {
		a.Cfg.GitHub.Repository = ref.FullName()
		changed = true
	}
	if a.Cfg.GitHub.SHA == "" && ref.HeadSHA != "" {
		a.Cfg.GitHub.SHA = ref.HeadSHA
		changed = true
	}
	if changed {
		a.Reporter = github.NewReporter(a.GitHub, a.Cfg, a.Logger)
	}
}
