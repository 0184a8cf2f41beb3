package entities

// CheckRunStatus enumerates check run lifecycle states. Transitions are
// monotonic: queued/in_progress advance to completed and never revert.
type CheckRunStatus string

const (
	// CheckQueued marks a check run waiting to start.
	CheckQueued CheckRunStatus = "queued"
	// CheckInProgress marks a running check run.
	CheckInProgress CheckRunStatus = "in_progress"
	// CheckCompleted marks a finished check run.
	CheckCompleted CheckRunStatus = "completed"
)

// CheckConclusion enumerates terminal check run outcomes. Meaningful only once
// the run is completed.
type CheckConclusion string

const (
	// ConclusionSuccess marks a passing run.
	ConclusionSuccess CheckConclusion = "success"
	// ConclusionSkipped marks a run the host skipped.
	ConclusionSkipped CheckConclusion = "skipped"
	// ConclusionNeutral marks a run that ended without a verdict.
	ConclusionNeutral CheckConclusion = "neutral"
	// ConclusionFailure marks a failed run.
	ConclusionFailure CheckConclusion = "failure"
	// ConclusionTimedOut marks a run the host timed out.
	ConclusionTimedOut CheckConclusion = "timed_out"
	// ConclusionActionRequired marks a run blocked on manual action.
	ConclusionActionRequired CheckConclusion = "action_required"
	// ConclusionStale marks a run invalidated by a newer push.
	ConclusionStale CheckConclusion = "stale"
	// ConclusionCancelled marks a cancelled run.
	ConclusionCancelled CheckConclusion = "cancelled"
	// ConclusionNone is the zero conclusion of a run that has not finished.
	ConclusionNone CheckConclusion = ""
)

// SuccessClass reports whether the conclusion counts as passing.
func (c CheckConclusion) SuccessClass() bool {
	switch c {
	case ConclusionSuccess, ConclusionSkipped, ConclusionNeutral:
		return true
	}
	return false
}

// FailureClass reports whether the conclusion counts as failing.
func (c CheckConclusion) FailureClass() bool {
	switch c {
	case ConclusionFailure, ConclusionTimedOut, ConclusionActionRequired, ConclusionStale, ConclusionCancelled:
		return true
	}
	return false
}

// CheckSuite groups the check runs the host started for one commit.
type CheckSuite struct {
	ID int64
}

// CheckRun is a single verification job observed on a commit.
type CheckRun struct {
	Name       string
	Status     CheckRunStatus
	Conclusion CheckConclusion
}

// Completed reports whether the run has finished.
func (r CheckRun) Completed() bool {
	return r.Status == CheckCompleted
}

// CommitState maps the observed run onto a commit status state. The anomalous
// flag is raised for completed runs without a recognized conclusion and for
// unknown statuses, which stay pending.
func (r CheckRun) CommitState() (state CommitState, anomalous bool) {
	switch r.Status {
	case CheckCompleted:
		switch {
		case r.Conclusion.SuccessClass():
			return StateSuccess, false
		case r.Conclusion.FailureClass():
			return StateFailure, false
		default:
			return StatePending, true
		}
	case CheckInProgress, CheckQueued:
		return StatePending, false
	default:
		return StatePending, true
	}
}

// Verdict is the reduced outcome of all baseline checks.
type Verdict string

const (
	// VerdictSuccess means every baseline check completed without a failure-class conclusion.
	VerdictSuccess Verdict = "SUCCESS"
	// VerdictFailure means at least one baseline check completed with a failure-class conclusion.
	VerdictFailure Verdict = "FAILURE"
)

// CommitState enumerates commit status states on the host.
type CommitState string

const (
	// StatePending marks an unfinished or unclassifiable check.
	StatePending CommitState = "pending"
	// StateSuccess marks a passing check.
	StateSuccess CommitState = "success"
	// StateFailure marks a failing check.
	StateFailure CommitState = "failure"
)

// CommitStatusRecord is one status written onto a commit.
type CommitStatusRecord struct {
	State       CommitState
	TargetURL   string
	Description string
	Context     string
}
