package promotion

import (
	"context"
	"errors"
	"fmt"

	"release-promoter/internal/entities"
	"release-promoter/internal/githost"
)

// MirrorStatuses projects completed remote check runs onto the local
// repository's tagged commit as commit statuses, polling until every currently
// visible run completes. The tag being absent locally and the remote commit
// having no check suites yet are expected transient states, not errors.
//
// A run that stays visible as completed across iterations is written again each
// iteration. The downstream dashboard reads the repeated writes as a freshness
// signal, so they are intentional.
func (u *Usecase) MirrorStatuses(ctx context.Context, remote, local githost.Repository, req entities.DeploymentRequest, cr *entities.ChangeRequest) error {
	localSHA, err := local.GetTagSHA(ctx, req.ReleaseTag)
	if errors.Is(err, entities.ErrTagNotFound) {
		u.log.Warnw("tag not found in local repository, skipping status mirroring", "tag", req.ReleaseTag)
		return nil
	}
	if err != nil {
		return err
	}
	u.log.Infow("local tag resolved", "tag", req.ReleaseTag, "sha", localSHA)

	suites, err := remote.ListCheckSuites(ctx, cr.HeadSHA)
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		u.log.Infow("no check suites found on remote commit", "sha", cr.HeadSHA)
		return nil
	}

	for poll := 1; ; poll++ {
		allComplete := true
		for _, suite := range suites {
			runs, err := remote.ListCheckRuns(ctx, suite.ID)
			if err != nil {
				return err
			}
			for _, run := range runs {
				state, anomalous := run.CommitState()
				if anomalous {
					u.log.Warnw("check run in unexpected state, mirroring as pending",
						"check", run.Name,
						"status", run.Status,
						"conclusion", run.Conclusion,
					)
				}
				if !run.Completed() {
					allComplete = false
					continue
				}
				record := entities.CommitStatusRecord{
					State:       state,
					TargetURL:   cr.URL,
					Description: fmt.Sprintf("PR #%d", cr.Number),
					Context:     fmt.Sprintf("%s / v%s", run.Name, req.ReleaseTag),
				}
				if err := local.CreateCommitStatus(ctx, localSHA, record); err != nil {
					return err
				}
				u.log.Infow("mirrored check run onto local commit",
					"context", record.Context,
					"state", record.State,
					"conclusion", run.Conclusion,
				)
			}
		}
		if allComplete {
			return nil
		}
		if poll >= u.cfg.Mirror.MaxPolls {
			return fmt.Errorf("%w: remote checks still incomplete after %d mirror polls", entities.ErrPollBudgetExhausted, poll)
		}

		u.log.Infow("remote check runs not completed yet, mirroring again",
			"retry_in", u.cfg.Mirror.PollInterval,
		)
		if err := u.clk.Sleep(ctx, u.cfg.Mirror.PollInterval); err != nil {
			return err
		}
	}
}
