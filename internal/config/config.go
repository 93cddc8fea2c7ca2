package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/pr-warden/internal/core"
	"github.com/sevigo/pr-warden/internal/logger"
)

// DefaultTitlePattern is the title convention enforced when PR_TITLE_REGEX
// is not set.
const DefaultTitlePattern = `^\[(Feature|Fix|Docs|Refactor|Test|Chore)\] .+`

// ErrUnsupportedProvider is returned by RequireLLM when LLM_PROVIDER names a
// provider without a client.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// Supported LLM providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config holds the application's configuration values.
type Config struct {
	GitHub  GitHubConfig
	LLM     LLMConfig
	Format  FormatConfig
	Quality QualityConfig
	Review  ReviewConfig
	Logging logger.Config

	// OutputPath is the GITHUB_OUTPUT file. Empty disables step outputs.
	OutputPath     string
	RepoConfigPath string
}

// GitHubConfig describes how to reach the hosting platform and which check
// run context reports are attached to.
type GitHubConfig struct {
	Token          string
	APIURL         string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	Repository     string
	PRNumber       int
	SHA            string
	CheckName      string
}

// LLMConfig selects the completion provider and the retry policy.
type LLMConfig struct {
	Provider        string
	Model           string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	GeminiAPIKey    string
	Temperature     float64
	MaxTokens       int
	MaxAttempts     int
	RetryDelay      time.Duration
}

type FormatConfig struct {
	TitlePattern  string
	MinBodyLength int
}

type QualityConfig struct {
	Threshold int
}

type ReviewConfig struct {
	MaxFiles       int
	ScoreThreshold int
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults and normalizes values. It uses the Viper library to
// handle configuration loading and precedence. Credentials and the provider
// are not validated here; each command checks what it needs with the
// Require* methods.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PR_TITLE_REGEX", DefaultTitlePattern)
	viper.SetDefault("PR_MIN_BODY_LENGTH", 50)
	viper.SetDefault("GITHUB_API_URL", "https://api.github.com")
	viper.SetDefault("CHECK_NAME", "PR 验证")
	viper.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	viper.SetDefault("MODEL_NAME", "gpt-4")
	viper.SetDefault("LLM_TEMPERATURE", 0.3)
	viper.SetDefault("LLM_MAX_TOKENS", 4096)
	viper.SetDefault("LLM_MAX_ATTEMPTS", 3)
	viper.SetDefault("LLM_RETRY_DELAY", "2s")
	viper.SetDefault("QUALITY_THRESHOLD", 6)
	viper.SetDefault("MAX_FILES_TO_REVIEW", 10)
	viper.SetDefault("REVIEW_THRESHOLD", 6)
	viper.SetDefault("REPO_CONFIG", ".pr-warden.yml")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stderr")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			slog.Error("failed to read config file", "error", err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(viper.GetString("LLM_PROVIDER")))

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:          viper.GetString("GITHUB_TOKEN"),
			APIURL:         viper.GetString("GITHUB_API_URL"),
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			InstallationID: viper.GetInt64("GITHUB_APP_INSTALLATION_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			Repository:     viper.GetString("REPO_FULL_NAME"),
			PRNumber:       viper.GetInt("PR_NUMBER"),
			SHA:            viper.GetString("GITHUB_SHA"),
			CheckName:      viper.GetString("CHECK_NAME"),
		},
		LLM: LLMConfig{
			Provider:        provider,
			Model:           viper.GetString("MODEL_NAME"),
			OpenAIAPIKey:    viper.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL:   viper.GetString("OPENAI_BASE_URL"),
			AnthropicAPIKey: viper.GetString("ANTHROPIC_API_KEY"),
			GeminiAPIKey:    viper.GetString("GEMINI_API_KEY"),
			Temperature:     viper.GetFloat64("LLM_TEMPERATURE"),
			MaxTokens:       viper.GetInt("LLM_MAX_TOKENS"),
			MaxAttempts:     viper.GetInt("LLM_MAX_ATTEMPTS"),
			RetryDelay:      viper.GetDuration("LLM_RETRY_DELAY"),
		},
		Format: FormatConfig{
			TitlePattern:  viper.GetString("PR_TITLE_REGEX"),
			MinBodyLength: viper.GetInt("PR_MIN_BODY_LENGTH"),
		},
		Quality: QualityConfig{
			Threshold: viper.GetInt("QUALITY_THRESHOLD"),
		},
		Review: ReviewConfig{
			MaxFiles:       viper.GetInt("MAX_FILES_TO_REVIEW"),
			ScoreThreshold: viper.GetInt("REVIEW_THRESHOLD"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		OutputPath:     viper.GetString("GITHUB_OUTPUT"),
		RepoConfigPath: viper.GetString("REPO_CONFIG"),
	}

	if cfg.LLM.MaxAttempts < 1 {
		cfg.LLM.MaxAttempts = 1
	}
	if cfg.LLM.RetryDelay < 0 {
		cfg.LLM.RetryDelay = 0
	}
	if cfg.Review.MaxFiles < 0 {
		cfg.Review.MaxFiles = 0
	}

	return cfg, nil
}

// ApplyRepoConfig lets the repository override format rules.
func (c *Config) ApplyRepoConfig(rc *core.RepoConfig) {
	if rc == nil {
		return
	}
	if rc.TitlePattern != "" {
		c.Format.TitlePattern = rc.TitlePattern
	}
	if rc.MinBodyLength > 0 {
		c.Format.MinBodyLength = rc.MinBodyLength
	}
}

// APIKey returns the credential of the configured provider.
func (c *LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// APIKeyEnv names the environment variable holding the provider credential.
func (c *LLMConfig) APIKeyEnv() string {
	switch c.Provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

// RequireLLM fails when the selected provider is unknown or has no
// credential.
func (c *Config) RequireLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.LLM.Provider)
	}
	if c.LLM.APIKey() == "" {
		return &core.ConfigurationError{Missing: []string{c.LLM.APIKeyEnv()}}
	}
	return nil
}

// HasAppCredentials reports whether GitHub App authentication is configured.
func (c *GitHubConfig) HasAppCredentials() bool {
	return c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyPath != ""
}

// RequireGitHub fails when neither a token nor App credentials are present.
func (c *Config) RequireGitHub() error {
	if c.GitHub.Token == "" && !c.GitHub.HasAppCredentials() {
		return &core.ConfigurationError{Missing: []string{"GITHUB_TOKEN"}}
	}
	return nil
}

// MissingCheckRunContext lists the variables that prevent relaying a report
// as a check run. An empty result means reports can be submitted.
func (c *Config) MissingCheckRunContext() []string {
	var missing []string
	if c.GitHub.Token == "" && !c.GitHub.HasAppCredentials() {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.GitHub.Repository == "" {
		missing = append(missing, "REPO_FULL_NAME")
	}
	if c.GitHub.SHA == "" {
		missing = append(missing, "GITHUB_SHA")
	}
	return missing
}
