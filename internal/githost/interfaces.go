// Package githost contains the version control host interfaces the pipeline consumes.
package githost

import (
	"context"

	"release-promoter/internal/entities"
)

// ContentsInterface exposes file read/write operations on a repository.
type ContentsInterface interface {
	// GetFileContent returns the decoded content of path at ref and the content hash
	// used for optimistic concurrency on writes.
	GetFileContent(ctx context.Context, path, ref string) (content, sha string, err error)
	// UpdateFile writes content to path on branch. The host rejects the write when
	// sha no longer matches the current content hash.
	UpdateFile(ctx context.Context, path, message, content, sha, branch string) error
}

// RefInterface exposes branch and tag operations.
type RefInterface interface {
	// GetBranchSHA resolves a branch head, returning entities.ErrBranchNotFound when absent.
	GetBranchSHA(ctx context.Context, name string) (string, error)
	CreateBranch(ctx context.Context, name, baseSHA string) error
	// GetTagSHA resolves a tag, returning entities.ErrTagNotFound when absent.
	GetTagSHA(ctx context.Context, tag string) (string, error)
}

// ChangeRequestInterface exposes pull request operations.
type ChangeRequestInterface interface {
	CreateChangeRequest(ctx context.Context, title, body, head, base string) (*entities.ChangeRequest, error)
	ListOpenChangeRequests(ctx context.Context, head, base string) ([]entities.ChangeRequest, error)
	ApproveChangeRequest(ctx context.Context, number int) error
	ListReviews(ctx context.Context, number int) ([]entities.Review, error)
	MergeChangeRequest(ctx context.Context, number int, title, message, method string) (merged bool, detail string, err error)
}

// ChecksInterface exposes check suite and check run lookups.
type ChecksInterface interface {
	ListCheckSuites(ctx context.Context, sha string) ([]entities.CheckSuite, error)
	ListCheckRuns(ctx context.Context, suiteID int64) ([]entities.CheckRun, error)
}

// StatusInterface exposes commit status writes.
type StatusInterface interface {
	CreateCommitStatus(ctx context.Context, sha string, status entities.CommitStatusRecord) error
}

// Repository aggregates every operation the pipeline performs against one repository.
type Repository interface {
	ContentsInterface
	RefInterface
	ChangeRequestInterface
	ChecksInterface
	StatusInterface
}

// Host hands out repository handles for one credential.
type Host interface {
	GetRepository(ctx context.Context, owner, name string) (Repository, error)
}
