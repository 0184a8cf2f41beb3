package promotion

import (
	"context"
	"errors"
	"fmt"

	"release-promoter/internal/entities"
	"release-promoter/internal/envfile"
	"release-promoter/internal/githost"
)

// EnsureBranch creates the branch from baseSHA unless it already exists.
// A second call with the same name is a no-op.
func (u *Usecase) EnsureBranch(ctx context.Context, repo githost.Repository, name, baseSHA string) error {
	_, err := repo.GetBranchSHA(ctx, name)
	if err == nil {
		u.log.Infow("branch already exists, reusing it", "branch", name)
		return nil
	}
	if !errors.Is(err, entities.ErrBranchNotFound) {
		return fmt.Errorf("probe branch %s: %w", name, err)
	}
	if err := repo.CreateBranch(ctx, name, baseSHA); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	u.log.Infow("branch created", "branch", name, "base_sha", baseSHA)
	return nil
}

// OpenChangeRequest bumps the image tag on the selected environment file and
// opens a change request carrying the update. The release branch is named after
// the release tag; the write is guarded by the content hash read from the base
// branch, so a concurrent change to the file fails the write instead of being
// overwritten.
func (u *Usecase) OpenChangeRequest(ctx context.Context, repo githost.Repository, req entities.DeploymentRequest) (*entities.ChangeRequest, error) {
	env, path, err := req.Target()
	if err != nil {
		return nil, err
	}
	u.log.Infow("targeting environment file",
		"environment", env,
		"path", path,
		"skip_merge", req.SkipMerge,
	)

	baseSHA, err := repo.GetBranchSHA(ctx, req.BaseBranch)
	if err != nil {
		return nil, fmt.Errorf("resolve base branch %s: %w", req.BaseBranch, err)
	}

	content, contentSHA, err := repo.GetFileContent(ctx, path, req.BaseBranch)
	if err != nil {
		return nil, err
	}
	updated := envfile.SetImageVersion(content, req.ReleaseTag)

	if err := u.EnsureBranch(ctx, repo, req.ReleaseTag, baseSHA); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Update %s (%s) with image tag %s", env, path, req.ReleaseTag)
	if err := repo.UpdateFile(ctx, path, message, updated, contentSHA, req.ReleaseTag); err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Update %s image tag with %s", env, req.ReleaseTag)
	body := fmt.Sprintf("### Automated Update %s image tag in `%s` with %s.", env, path, req.ReleaseTag)
	cr, err := repo.CreateChangeRequest(ctx, title, body, req.ReleaseTag, req.BaseBranch)
	if err != nil {
		return nil, err
	}
	cr.Environment = env
	cr.Branch = req.ReleaseTag

	u.log.Infow("change request created",
		"environment", env,
		"url", cr.URL,
		"branch", cr.Branch,
	)
	return cr, nil
}

// FetchChangeRequest resolves the single open change request for the release
// branch. Zero or more than one match is a hard error: the pipeline assumes
// exactly one open change request per release tag.
func (u *Usecase) FetchChangeRequest(ctx context.Context, repo githost.Repository, req entities.DeploymentRequest) (*entities.ChangeRequest, error) {
	head := req.RepoOwner + ":" + req.ReleaseTag
	open, err := repo.ListOpenChangeRequests(ctx, head, req.BaseBranch)
	if err != nil {
		return nil, err
	}
	if len(open) != 1 {
		return nil, fmt.Errorf("%w: found %d open change requests with head %s", entities.ErrChangeRequestCardinality, len(open), head)
	}
	cr := open[0]
	return &cr, nil
}
