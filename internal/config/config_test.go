package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/core"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("LLM_PROVIDER", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultTitlePattern, cfg.Format.TitlePattern)
	assert.Equal(t, 50, cfg.Format.MinBodyLength)
	assert.Equal(t, ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 3, cfg.LLM.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.LLM.RetryDelay)
	assert.Equal(t, 10, cfg.Review.MaxFiles)
	assert.Equal(t, 6, cfg.Review.ScoreThreshold)
	assert.Equal(t, 6, cfg.Quality.Threshold)
	assert.Equal(t, "PR 验证", cfg.GitHub.CheckName)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PR_TITLE_REGEX", `^feat: .+`)
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("REPO_FULL_NAME", "sevigo/pr-warden")
	t.Setenv("PR_NUMBER", "42")
	t.Setenv("GITHUB_SHA", "abc123")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("MAX_FILES_TO_REVIEW", "3")
	t.Setenv("REVIEW_THRESHOLD", "7")
	t.Setenv("LLM_RETRY_DELAY", "0s")
	t.Setenv("GITHUB_OUTPUT", "/tmp/out")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, `^feat: .+`, cfg.Format.TitlePattern)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "sevigo/pr-warden", cfg.GitHub.Repository)
	assert.Equal(t, 42, cfg.GitHub.PRNumber)
	assert.Equal(t, ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-ant", cfg.LLM.APIKey())
	assert.Equal(t, 3, cfg.Review.MaxFiles)
	assert.Equal(t, 7, cfg.Review.ScoreThreshold)
	assert.Equal(t, time.Duration(0), cfg.LLM.RetryDelay)
	assert.Equal(t, "/tmp/out", cfg.OutputPath)
	assert.Empty(t, cfg.MissingCheckRunContext())
	assert.NoError(t, cfg.RequireLLM())
	assert.NoError(t, cfg.RequireGitHub())
}

func TestLoadConfig_UnsupportedProviderOnlyFailsLLMCommands(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("LLM_PROVIDER", "Ollama")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, DefaultTitlePattern, cfg.Format.TitlePattern)

	err = cfg.RequireLLM()
	require.ErrorIs(t, err, ErrUnsupportedProvider)
	assert.Contains(t, err.Error(), "ollama")
}

func TestConfig_Require(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantLLM     []string
		wantGitHub  bool
		wantMissing []string
	}{
		{
			name:        "nothing configured",
			cfg:         Config{LLM: LLMConfig{Provider: ProviderOpenAI}},
			wantLLM:     []string{"OPENAI_API_KEY"},
			wantGitHub:  true,
			wantMissing: []string{"GITHUB_TOKEN", "REPO_FULL_NAME", "GITHUB_SHA"},
		},
		{
			name:        "gemini key missing",
			cfg:         Config{LLM: LLMConfig{Provider: ProviderGemini, OpenAIAPIKey: "x"}, GitHub: GitHubConfig{Token: "t", Repository: "o/r"}},
			wantLLM:     []string{"GEMINI_API_KEY"},
			wantMissing: []string{"GITHUB_SHA"},
		},
		{
			name: "app credentials replace token",
			cfg: Config{
				LLM:    LLMConfig{Provider: ProviderOpenAI, OpenAIAPIKey: "x"},
				GitHub: GitHubConfig{AppID: 1, InstallationID: 2, PrivateKeyPath: "key.pem", Repository: "o/r", SHA: "abc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.RequireLLM()
			if tt.wantLLM == nil {
				assert.NoError(t, err)
			} else {
				var cfgErr *core.ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, tt.wantLLM, cfgErr.Missing)
			}

			assert.Equal(t, tt.wantGitHub, tt.cfg.RequireGitHub() != nil)
			assert.Equal(t, tt.wantMissing, tt.cfg.MissingCheckRunContext())
		})
	}
}

func TestLoadRepoConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file returns defaults", func(t *testing.T) {
		rc, err := LoadRepoConfig(filepath.Join(dir, "absent.yml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, rc)
		assert.Empty(t, rc.ExcludeExts)
	})

	t.Run("overrides are applied", func(t *testing.T) {
		path := filepath.Join(dir, ".pr-warden.yml")
		content := "title_pattern: '^(feat|fix): .+'\nmin_body_length: 20\nexclude_exts: [\".md\", \"lock\"]\nexclude_dirs: [vendor]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		rc, err := LoadRepoConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{".md", "lock"}, rc.ExcludeExts)
		assert.Equal(t, []string{"vendor"}, rc.ExcludeDirs)

		cfg := &Config{Format: FormatConfig{TitlePattern: DefaultTitlePattern, MinBodyLength: 50}}
		cfg.ApplyRepoConfig(rc)
		assert.Equal(t, "^(feat|fix): .+", cfg.Format.TitlePattern)
		assert.Equal(t, 20, cfg.Format.MinBodyLength)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yml")
		require.NoError(t, os.WriteFile(path, []byte("exclude_exts: [unclosed"), 0o600))

		_, err := LoadRepoConfig(path)
		assert.ErrorIs(t, err, ErrConfigParsing)
	})
}
