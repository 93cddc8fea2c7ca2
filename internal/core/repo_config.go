package core

// RepoConfig represents the structure of the .pr-warden.yml file.
type RepoConfig struct {
	// Overrides the title pattern from the environment.
	TitlePattern string `yaml:"title_pattern"`

	// Overrides the minimum trimmed body length.
	MinBodyLength int `yaml:"min_body_length"`

	// Custom instructions appended to the code review prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Files below these directories are not reviewed.
	// Example: ["dist", "vendor", "docs"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Files with these extensions are not reviewed.
	// The leading dot is optional. Example: [".md", "lock", ".log"]
	ExcludeExts []string `yaml:"exclude_exts"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeDirs:        []string{},
		ExcludeExts:        []string{},
	}
}
