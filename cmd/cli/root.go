package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/app"
	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/logger"
	"github.com/sevigo/pr-warden/internal/wire"
)

// initializeApp is replaced in tests.
var initializeApp = wire.InitializeApp

var (
	githubToken string
	logLevel    string
	logFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "pr-warden",
	Short: "pr-warden runs pull request checks in CI.",
	Long: `pr-warden validates pull request titles and descriptions, scores them with an
LLM, reviews changed files and reports the results as GitHub check runs.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&githubToken, "github-token", "t", "", "GitHub token (overrides GITHUB_TOKEN)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	flags.StringVar(&logFormat, "log-format", "", "log format: text or json (overrides LOG_FORMAT)")

	for key, name := range map[string]string{
		"GITHUB_TOKEN": "github-token",
		"LOG_LEVEL":    "log-level",
		"LOG_FORMAT":   "log-format",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig maps dashed keys to environment variable names.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// initApp assembles the application and attaches its logger to the
// command context.
func initApp(cmd *cobra.Command) (context.Context, *app.App, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := initializeApp(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return logger.WithContext(ctx, a.Logger), a, nil
}

// writeOutputs writes step outputs. Failures are logged and otherwise
// ignored: the verdict is already decided.
func writeOutputs(a *app.App, outputs ...actions.Output) {
	if err := a.Output.SetAll(outputs...); err != nil {
		a.Logger.Warn("failed to write step outputs", "error", err)
	}
}

// reportOutputs maps a check report to prefix_* step outputs.
func reportOutputs(prefix string, r core.CheckReport) []actions.Output {
	return []actions.Output{
		{Key: prefix + "_title", Value: r.Title},
		{Key: prefix + "_summary", Value: r.Summary},
		{Key: prefix + "_conclusion", Value: string(r.Conclusion)},
		{Key: prefix + "_text", Value: r.Text},
	}
}

// relay submits a report and tells the user what happened. A report that
// was not delivered is printed instead.
func relay(ctx context.Context, a *app.App, report core.CheckReport) core.DeliveryResult {
	result := a.Relay(ctx, report)
	if result.Delivered {
		a.Console.Success("Check run submitted: %s", result.Detail)
		return result
	}
	a.Console.Dim("Check run not submitted: %s", result.Detail)
	a.Console.Report(report)
	return result
}
