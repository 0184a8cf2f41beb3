package config

import (
	"errors"
	"time"
)

// Config holds application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Checks  ChecksConfig  `mapstructure:"checks"`
	Mirror  MirrorConfig  `mapstructure:"mirror"`
	Merge   MergeConfig   `mapstructure:"merge"`
	Health  HealthConfig  `mapstructure:"health"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("github.token is required")
	}
	if c.GitHub.RepoOwner == "" || c.GitHub.RepoName == "" {
		return errors.New("github repository owner and name are required")
	}
	if c.GitHub.ReleaseTag == "" {
		return errors.New("github.release_tag is required")
	}
	if c.Checks.PollInterval <= 0 || c.Mirror.PollInterval <= 0 {
		return errors.New("poll intervals must be positive")
	}
	if c.Checks.MaxPolls <= 0 || c.Mirror.MaxPolls <= 0 {
		return errors.New("max poll counts must be positive")
	}
	if c.Health.MaxAttempts <= 0 {
		return errors.New("health.max_attempts must be positive")
	}
	return nil
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// GitHubConfig describes the repositories and credentials the pipeline works with.
type GitHubConfig struct {
	Token              string `mapstructure:"token"`
	BotToken           string `mapstructure:"bot_token"`
	RepoOwner          string `mapstructure:"repo_owner"`
	RepoName           string `mapstructure:"repo_name"`
	ReleaseTag         string `mapstructure:"release_tag"`
	LocalRepoOwner     string `mapstructure:"local_repo_owner"`
	LocalRepoName      string `mapstructure:"local_repo_name"`
	ProdEnvFilePath    string `mapstructure:"prod_env_file_path"`
	PreProdEnvFilePath string `mapstructure:"pre_prod_env_file_path"`
	BaseBranch         string `mapstructure:"base_branch"`
}

// ChecksConfig tunes the check aggregation loop.
type ChecksConfig struct {
	SettleDelay  time.Duration `mapstructure:"settle_delay"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls"`
}

// MirrorConfig tunes the commit status mirroring loop.
type MirrorConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxPolls     int           `mapstructure:"max_polls"`
}

// MergeConfig contains the delays around approval and merge.
type MergeConfig struct {
	ApprovalDelay time.Duration `mapstructure:"approval_delay"`
	RolloutDelay  time.Duration `mapstructure:"rollout_delay"`
}

// HealthConfig describes the deployment health endpoint probe.
type HealthConfig struct {
	URL                string        `mapstructure:"url"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	RetryWait          time.Duration `mapstructure:"retry_wait"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}
