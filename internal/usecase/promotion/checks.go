package promotion

import (
	"context"
	"fmt"
	"sort"

	"release-promoter/internal/entities"
	"release-promoter/internal/githost"
)

// checkSnapshot is one poll's view of every check run visible for a commit, by name.
type checkSnapshot map[string]entities.CheckRun

func (u *Usecase) fetchCheckSnapshot(ctx context.Context, repo githost.Repository, sha string) (checkSnapshot, error) {
	suites, err := repo.ListCheckSuites(ctx, sha)
	if err != nil {
		return nil, err
	}
	snap := checkSnapshot{}
	for _, suite := range suites {
		runs, err := repo.ListCheckRuns(ctx, suite.ID)
		if err != nil {
			return nil, err
		}
		for _, run := range runs {
			snap[run.Name] = run
		}
	}
	return snap, nil
}

// reduceChecks maps a snapshot onto the still-pending and failed baseline
// checks. Checks outside the baseline are ignored; a baseline check missing
// from the snapshot counts as pending.
func reduceChecks(baseline map[string]struct{}, snap checkSnapshot) (pending, failed []string) {
	for name := range baseline {
		run, ok := snap[name]
		if !ok || !run.Completed() {
			pending = append(pending, name)
			continue
		}
		if run.Conclusion.FailureClass() {
			failed = append(failed, name)
		}
	}
	sort.Strings(pending)
	sort.Strings(failed)
	return pending, failed
}

// AwaitChecks polls the check runs for sha until every check observed in the
// first snapshot completes, then reduces their conclusions to a single verdict.
// Checks registering after the first snapshot are outside the baseline and do
// not extend the wait.
func (u *Usecase) AwaitChecks(ctx context.Context, repo githost.Repository, sha string) (entities.Verdict, error) {
	snap, err := u.fetchCheckSnapshot(ctx, repo, sha)
	if err != nil {
		return "", err
	}

	baseline := make(map[string]struct{}, len(snap))
	names := make([]string, 0, len(snap))
	for name := range snap {
		baseline[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	u.log.Infow("observed check runs", "sha", sha, "checks", names)

	for poll := 1; ; poll++ {
		pending, failed := reduceChecks(baseline, snap)
		if len(pending) == 0 {
			if len(failed) > 0 {
				u.log.Warnw("checks finished with failures", "failed", failed)
				return entities.VerdictFailure, nil
			}
			u.log.Infow("all checks passed", "checks", names)
			return entities.VerdictSuccess, nil
		}
		if poll >= u.cfg.Checks.MaxPolls {
			return "", fmt.Errorf("%w: checks still pending after %d polls: %v", entities.ErrPollBudgetExhausted, poll, pending)
		}

		u.log.Infow("check runs not completed yet",
			"pending", pending,
			"retry_in", u.cfg.Checks.PollInterval,
		)
		if err := u.clk.Sleep(ctx, u.cfg.Checks.PollInterval); err != nil {
			return "", err
		}

		if snap, err = u.fetchCheckSnapshot(ctx, repo, sha); err != nil {
			return "", err
		}
	}
}
