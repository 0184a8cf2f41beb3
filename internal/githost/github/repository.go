package github

import (
	"context"
	"fmt"
	"net/http"

	"release-promoter/internal/entities"
	"release-promoter/internal/githost"

	gh "github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// repository is a handle bound to one owner/name pair.
type repository struct {
	api   *gh.Client
	log   *zap.SugaredLogger
	owner string
	name  string
}

var _ githost.Repository = (*repository)(nil)

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

// GetFileContent reads path at ref and returns the decoded content plus its blob SHA.
func (r *repository) GetFileContent(ctx context.Context, path, ref string) (string, string, error) {
	file, _, _, err := r.api.Repositories.GetContents(ctx, r.owner, r.name, path, &gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", "", fmt.Errorf("get contents %s@%s: %w", path, ref, err)
	}
	if file == nil {
		return "", "", fmt.Errorf("get contents %s@%s: path is a directory", path, ref)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", "", fmt.Errorf("decode contents %s@%s: %w", path, ref, err)
	}
	return content, file.GetSHA(), nil
}

// UpdateFile commits content to path on branch, guarded by the expected blob SHA.
func (r *repository) UpdateFile(ctx context.Context, path, message, content, sha, branch string) error {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: []byte(content),
		SHA:     gh.String(sha),
		Branch:  gh.String(branch),
	}
	if _, _, err := r.api.Repositories.UpdateFile(ctx, r.owner, r.name, path, opts); err != nil {
		return fmt.Errorf("update file %s on %s: %w", path, branch, err)
	}
	return nil
}

// GetBranchSHA resolves the head commit of a branch.
func (r *repository) GetBranchSHA(ctx context.Context, name string) (string, error) {
	branch, resp, err := r.api.Repositories.GetBranch(ctx, r.owner, r.name, name, 0)
	if err != nil {
		if isNotFound(resp) {
			return "", fmt.Errorf("%w: %s", entities.ErrBranchNotFound, name)
		}
		return "", fmt.Errorf("get branch %s: %w", name, err)
	}
	return branch.GetCommit().GetSHA(), nil
}

// CreateBranch creates refs/heads/name pointing at baseSHA.
func (r *repository) CreateBranch(ctx context.Context, name, baseSHA string) error {
	ref := &gh.Reference{
		Ref:    gh.String("refs/heads/" + name),
		Object: &gh.GitObject{SHA: gh.String(baseSHA)},
	}
	if _, _, err := r.api.Git.CreateRef(ctx, r.owner, r.name, ref); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// GetTagSHA resolves the commit a tag points at.
func (r *repository) GetTagSHA(ctx context.Context, tag string) (string, error) {
	ref, resp, err := r.api.Git.GetRef(ctx, r.owner, r.name, "tags/"+tag)
	if err != nil {
		if isNotFound(resp) {
			return "", fmt.Errorf("%w: %s", entities.ErrTagNotFound, tag)
		}
		return "", fmt.Errorf("get tag %s: %w", tag, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateChangeRequest opens a pull request from head into base.
func (r *repository) CreateChangeRequest(ctx context.Context, title, body, head, base string) (*entities.ChangeRequest, error) {
	pr, _, err := r.api.PullRequests.Create(ctx, r.owner, r.name, &gh.NewPullRequest{
		Title: gh.String(title),
		Body:  gh.String(body),
		Head:  gh.String(head),
		Base:  gh.String(base),
	})
	if err != nil {
		return nil, fmt.Errorf("create pull request %s -> %s: %w", head, base, err)
	}
	return &entities.ChangeRequest{
		Number:  pr.GetNumber(),
		HeadSHA: pr.GetHead().GetSHA(),
		URL:     pr.GetHTMLURL(),
		Branch:  head,
	}, nil
}

// ListOpenChangeRequests lists open pull requests filtered by head and base.
func (r *repository) ListOpenChangeRequests(ctx context.Context, head, base string) ([]entities.ChangeRequest, error) {
	pulls, _, err := r.api.PullRequests.List(ctx, r.owner, r.name, &gh.PullRequestListOptions{
		State: "open",
		Head:  head,
		Base:  base,
	})
	if err != nil {
		return nil, fmt.Errorf("list open pull requests head=%s base=%s: %w", head, base, err)
	}
	out := make([]entities.ChangeRequest, 0, len(pulls))
	for _, pr := range pulls {
		out = append(out, entities.ChangeRequest{
			Number:  pr.GetNumber(),
			HeadSHA: pr.GetHead().GetSHA(),
			URL:     pr.GetHTMLURL(),
			Branch:  pr.GetHead().GetRef(),
		})
	}
	return out, nil
}

// ApproveChangeRequest submits an approving review as the authenticated identity.
func (r *repository) ApproveChangeRequest(ctx context.Context, number int) error {
	review := &gh.PullRequestReviewRequest{Event: gh.String("APPROVE")}
	if _, _, err := r.api.PullRequests.CreateReview(ctx, r.owner, r.name, number, review); err != nil {
		return fmt.Errorf("approve pull request #%d: %w", number, err)
	}
	return nil
}

// ListReviews returns the reviews left on a pull request.
func (r *repository) ListReviews(ctx context.Context, number int) ([]entities.Review, error) {
	reviews, _, err := r.api.PullRequests.ListReviews(ctx, r.owner, r.name, number, nil)
	if err != nil {
		return nil, fmt.Errorf("list reviews #%d: %w", number, err)
	}
	out := make([]entities.Review, 0, len(reviews))
	for _, rev := range reviews {
		out = append(out, entities.Review{State: entities.ReviewState(rev.GetState())})
	}
	return out, nil
}

// MergeChangeRequest merges a pull request, reporting the host's merged flag and detail message.
func (r *repository) MergeChangeRequest(ctx context.Context, number int, title, message, method string) (bool, string, error) {
	result, _, err := r.api.PullRequests.Merge(ctx, r.owner, r.name, number, message, &gh.PullRequestOptions{
		CommitTitle: title,
		MergeMethod: method,
	})
	if err != nil {
		return false, "", fmt.Errorf("merge pull request #%d: %w", number, err)
	}
	return result.GetMerged(), result.GetMessage(), nil
}

// ListCheckSuites returns the check suites registered for a commit.
func (r *repository) ListCheckSuites(ctx context.Context, sha string) ([]entities.CheckSuite, error) {
	results, _, err := r.api.Checks.ListCheckSuitesForRef(ctx, r.owner, r.name, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("list check suites for %s: %w", sha, err)
	}
	out := make([]entities.CheckSuite, 0, len(results.CheckSuites))
	for _, suite := range results.CheckSuites {
		out = append(out, entities.CheckSuite{ID: suite.GetID()})
	}
	return out, nil
}

// ListCheckRuns returns the check runs belonging to a check suite.
func (r *repository) ListCheckRuns(ctx context.Context, suiteID int64) ([]entities.CheckRun, error) {
	results, _, err := r.api.Checks.ListCheckRunsCheckSuite(ctx, r.owner, r.name, suiteID, nil)
	if err != nil {
		return nil, fmt.Errorf("list check runs for suite %d: %w", suiteID, err)
	}
	out := make([]entities.CheckRun, 0, len(results.CheckRuns))
	for _, run := range results.CheckRuns {
		out = append(out, entities.CheckRun{
			Name:       run.GetName(),
			Status:     entities.CheckRunStatus(run.GetStatus()),
			Conclusion: entities.CheckConclusion(run.GetConclusion()),
		})
	}
	return out, nil
}

// CreateCommitStatus writes a status record onto a commit.
func (r *repository) CreateCommitStatus(ctx context.Context, sha string, status entities.CommitStatusRecord) error {
	repoStatus := &gh.RepoStatus{
		State:       gh.String(string(status.State)),
		TargetURL:   gh.String(status.TargetURL),
		Description: gh.String(status.Description),
		Context:     gh.String(status.Context),
	}
	if _, _, err := r.api.Repositories.CreateStatus(ctx, r.owner, r.name, sha, repoStatus); err != nil {
		return fmt.Errorf("create commit status %q on %s: %w", status.Context, sha, err)
	}
	r.log.Debugw("commit status written", "sha", sha, "context", status.Context, "state", status.State)
	return nil
}
