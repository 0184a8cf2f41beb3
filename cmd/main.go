// Package main wires the release promotion pipeline CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"release-promoter/config"
	"release-promoter/internal/clock"
	"release-promoter/internal/entities"
	githubhost "release-promoter/internal/githost/github"
	"release-promoter/internal/usecase"
	"release-promoter/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var skipMerge bool

	cmd := &cobra.Command{
		Use:           "release-promoter",
		Short:         "Promote a release by bumping the deployed image tag and shepherding the change request through checks, merge and verification",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), skipMerge)
		},
	}
	cmd.Flags().BoolVar(&skipMerge, "skip-merge", false, "target the PROD environment file and stop after check aggregation, without approving, merging or verifying")
	return cmd
}

func run(ctx context.Context, skipMerge bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !skipMerge && cfg.GitHub.BotToken == "" {
		err := errors.New("github.bot_token is required unless --skip-merge is set")
		log.Errorw("configuration error", "error", err)
		return err
	}

	host := githubhost.New(cfg.GitHub.Token, log.Named("githost"))
	bot := githubhost.New(cfg.GitHub.BotToken, log.Named("githost.bot"))
	uc := usecase.New(log, host, bot, cfg, clock.System{})

	req := entities.DeploymentRequest{
		ReleaseTag:         cfg.GitHub.ReleaseTag,
		RepoOwner:          cfg.GitHub.RepoOwner,
		RepoName:           cfg.GitHub.RepoName,
		LocalRepoOwner:     cfg.GitHub.LocalRepoOwner,
		LocalRepoName:      cfg.GitHub.LocalRepoName,
		ProdEnvFilePath:    cfg.GitHub.ProdEnvFilePath,
		PreProdEnvFilePath: cfg.GitHub.PreProdEnvFilePath,
		BaseBranch:         cfg.GitHub.BaseBranch,
		SkipMerge:          skipMerge,
	}

	outcome, err := uc.Run(ctx, req)
	if err != nil {
		log.Errorw("release promotion failed", "release_tag", req.ReleaseTag, "error", err)
		return err
	}

	log.Infow("release promotion finished",
		"environment", outcome.Environment,
		"url", outcome.ChangeRequestURL,
		"checks_passed", outcome.ChecksPassed,
		"merged", outcome.Merged,
		"verified", outcome.Verified,
		"verification_skipped", outcome.VerificationSkipped,
	)
	return nil
}
