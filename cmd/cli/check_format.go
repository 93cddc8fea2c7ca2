package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sevigo/pr-warden/internal/actions"
	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/format"
)

var checkFormatCmd = &cobra.Command{
	Use:   "check-format <title> [body]",
	Short: "Validate the pull request title and description format",
	Long: `Validate the pull request title against PR_TITLE_REGEX and require a
description of at least PR_MIN_BODY_LENGTH characters.

Exits with status 1 when the pull request does not follow the format. When
GITHUB_TOKEN, REPO_FULL_NAME and GITHUB_SHA are set the result is also
submitted as a check run.

Examples:
  pr-warden check-format "[Fix] handle empty config" "$PR_BODY"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCheckFormat,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(checkFormatCmd)
}

func runCheckFormat(cmd *cobra.Command, args []string) error {
	ctx, a, err := initApp(cmd)
	if err != nil {
		return err
	}

	meta := core.PullRequestMetadata{Title: args[0]}
	if len(args) > 1 {
		meta.Body = args[1]
	}

	rules, err := format.NewRules(a.Cfg.Format.TitlePattern, a.Cfg.Format.MinBodyLength)
	if err != nil {
		return fmt.Errorf("invalid title pattern: %w", err)
	}

	a.Logger.Debug("checking pull request format", "title", meta.Title, "body_length", len([]rune(meta.Body)))
	result := format.Validate(meta, rules)

	printVerdict(a.Console.Success, a.Console.Error, result.Title.TitleValid, result.Title.Message)
	printVerdict(a.Console.Success, a.Console.Error, result.Body.BodyValid, result.Body.Message)
	if result.Body.Warning != "" {
		a.Console.Warning("%s", result.Body.Warning)
	}

	report := result.Report()
	outputs := reportOutputs("format_check", report)
	writeOutputs(a, append(outputs,
		actions.Output{Key: "format_check_title_valid", Value: strconv.FormatBool(result.Title.TitleValid)},
		actions.Output{Key: "format_check_body_valid", Value: strconv.FormatBool(result.Body.BodyValid)},
	)...)
	relay(ctx, a, report)

	if !result.Accepted() {
		a.Console.Error("PR 格式验证失败。请修复上述问题。")
		return core.ErrRejected
	}
	a.Console.Success("PR 格式验证通过。")
	return nil
}

func printVerdict(ok, fail func(string, ...any), valid bool, message string) {
	if message == "" {
		return
	}
	if valid {
		ok("%s", message)
		return
	}
	fail("%s", message)
}
