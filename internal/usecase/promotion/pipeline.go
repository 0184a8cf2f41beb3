package promotion

import (
	"context"
	"fmt"

	"release-promoter/internal/entities"
	"release-promoter/internal/githost"
)

const (
	mergeCommitTitle   = "Merging Passing PR"
	mergeCommitMessage = "Merging PR automatically as all checks have passed"
	mergeMethodSquash  = "squash"
)

// Run executes the promotion pipeline for req and reports the final outcome.
// Every stage failure aborts the remainder; nothing continues degraded.
func (u *Usecase) Run(ctx context.Context, req entities.DeploymentRequest) (*entities.DeploymentOutcome, error) {
	remote, err := u.host.GetRepository(ctx, req.RepoOwner, req.RepoName)
	if err != nil {
		return nil, err
	}

	cr, err := u.OpenChangeRequest(ctx, remote, req)
	if err != nil {
		return nil, err
	}

	resolved, err := u.FetchChangeRequest(ctx, remote, req)
	if err != nil {
		return nil, err
	}
	cr.Number = resolved.Number
	cr.HeadSHA = resolved.HeadSHA

	u.log.Infow("change request ready",
		"environment", cr.Environment,
		"number", cr.Number,
		"head_sha", cr.HeadSHA,
		"url", cr.URL,
	)

	// Give the host a moment to register check suites for the fresh commit.
	if err := u.clk.Sleep(ctx, u.cfg.Checks.SettleDelay); err != nil {
		return nil, err
	}

	local, err := u.host.GetRepository(ctx, req.LocalRepoOwner, req.LocalRepoName)
	if err != nil {
		return nil, err
	}
	if err := u.MirrorStatuses(ctx, remote, local, req, cr); err != nil {
		return nil, err
	}

	verdict, err := u.AwaitChecks(ctx, remote, cr.HeadSHA)
	if err != nil {
		return nil, err
	}

	outcome := &entities.DeploymentOutcome{
		Environment:      cr.Environment,
		ChangeRequestURL: cr.URL,
		ChecksPassed:     verdict == entities.VerdictSuccess,
	}

	if req.SkipMerge {
		outcome.VerificationSkipped = true
		u.log.Infow("skipping approval, merge and verification",
			"environment", cr.Environment,
			"url", cr.URL,
		)
		return outcome, nil
	}

	if verdict != entities.VerdictSuccess {
		return nil, fmt.Errorf("%w: change request #%d", entities.ErrChecksFailed, cr.Number)
	}

	if err := u.approveAndMerge(ctx, remote, req, cr); err != nil {
		return nil, err
	}
	outcome.Merged = true

	u.log.Infow("waiting for rollout before verification", "wait", u.cfg.Merge.RolloutDelay)
	if err := u.clk.Sleep(ctx, u.cfg.Merge.RolloutDelay); err != nil {
		return nil, err
	}
	if !u.VerifyDeployment(ctx, u.cfg.Health.URL) {
		return nil, fmt.Errorf("%w: %s", entities.ErrVerificationFailed, u.cfg.Health.URL)
	}
	outcome.Verified = true
	u.log.Infow("deployment verified", "url", u.cfg.Health.URL)

	return outcome, nil
}

// approveAndMerge approves the change request with the bot identity, confirms
// the approval registered, then squash-merges. A merge the host reports as
// unmerged is an error even when the call itself succeeded.
func (u *Usecase) approveAndMerge(ctx context.Context, remote githost.Repository, req entities.DeploymentRequest, cr *entities.ChangeRequest) error {
	botRepo, err := u.bot.GetRepository(ctx, req.RepoOwner, req.RepoName)
	if err != nil {
		return err
	}
	if err := botRepo.ApproveChangeRequest(ctx, cr.Number); err != nil {
		return err
	}
	u.log.Infow("change request approved by bot account", "number", cr.Number)

	if err := u.clk.Sleep(ctx, u.cfg.Merge.ApprovalDelay); err != nil {
		return err
	}

	reviews, err := remote.ListReviews(ctx, cr.Number)
	if err != nil {
		return err
	}
	if !anyApproved(reviews) {
		return fmt.Errorf("%w: change request #%d", entities.ErrNotApproved, cr.Number)
	}

	merged, detail, err := remote.MergeChangeRequest(ctx, cr.Number, mergeCommitTitle, mergeCommitMessage, mergeMethodSquash)
	if err != nil {
		return err
	}
	if !merged {
		return fmt.Errorf("%w: change request #%d: %s", entities.ErrNotMerged, cr.Number, detail)
	}
	u.log.Infow("change request merged", "number", cr.Number)
	return nil
}

func anyApproved(reviews []entities.Review) bool {
	for _, review := range reviews {
		if review.State == entities.ReviewApproved {
			return true
		}
	}
	return false
}
