// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")

	v.SetDefault("github.base_branch", "main")

	v.SetDefault("checks.settle_delay", 10*time.Second)
	v.SetDefault("checks.poll_interval", 60*time.Second)
	v.SetDefault("checks.max_polls", 720)

	v.SetDefault("mirror.poll_interval", 30*time.Second)
	v.SetDefault("mirror.max_polls", 720)

	v.SetDefault("merge.approval_delay", 10*time.Second)
	v.SetDefault("merge.rollout_delay", 45*time.Second)

	v.SetDefault("health.max_attempts", 10)
	v.SetDefault("health.retry_wait", 30*time.Second)
	v.SetDefault("health.request_timeout", 10*time.Second)
	v.SetDefault("health.insecure_skip_verify", true)
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"github.token",
		"github.bot_token",
		"github.repo_owner",
		"github.repo_name",
		"github.release_tag",
		"github.local_repo_owner",
		"github.local_repo_name",
		"github.prod_env_file_path",
		"github.pre_prod_env_file_path",
		"github.base_branch",
		"checks.settle_delay",
		"checks.poll_interval",
		"checks.max_polls",
		"mirror.poll_interval",
		"mirror.max_polls",
		"merge.approval_delay",
		"merge.rollout_delay",
		"health.url",
		"health.max_attempts",
		"health.retry_wait",
		"health.request_timeout",
		"health.insecure_skip_verify",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
