// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrMissingEnvFilePath signals an unconfigured environment file path for the selected target.
	ErrMissingEnvFilePath = errors.New("environment file path not configured")
	// ErrBranchNotFound is returned when a branch does not exist on the host.
	ErrBranchNotFound = errors.New("branch not found")
	// ErrTagNotFound is returned when a tag does not exist on the host.
	ErrTagNotFound = errors.New("tag not found")
	// ErrChangeRequestCardinality signals an unexpected number of matching open change requests.
	ErrChangeRequestCardinality = errors.New("unexpected number of open change requests")
	// ErrChecksFailed signals that at least one baseline check concluded with a failure.
	ErrChecksFailed = errors.New("verification checks failed")
	// ErrNotApproved signals a missing approval after the grace delay.
	ErrNotApproved = errors.New("change request not approved")
	// ErrNotMerged signals a merge reported unmerged by the host.
	ErrNotMerged = errors.New("change request not merged")
	// ErrVerificationFailed signals an unhealthy deployment after exhausting retries.
	ErrVerificationFailed = errors.New("deployment verification failed")
	// ErrPollBudgetExhausted signals a polling loop that ran out of iterations.
	ErrPollBudgetExhausted = errors.New("poll budget exhausted")
)
