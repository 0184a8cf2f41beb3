package promotion

import (
	"context"
	"time"

	"release-promoter/config"
	"release-promoter/internal/entities"
	"release-promoter/internal/githost"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type repoMock struct{ mock.Mock }

var _ githost.Repository = (*repoMock)(nil)

func (m *repoMock) GetFileContent(ctx context.Context, path, ref string) (string, string, error) {
	args := m.Called(ctx, path, ref)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *repoMock) UpdateFile(ctx context.Context, path, message, content, sha, branch string) error {
	args := m.Called(ctx, path, message, content, sha, branch)
	return args.Error(0)
}

func (m *repoMock) GetBranchSHA(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *repoMock) CreateBranch(ctx context.Context, name, baseSHA string) error {
	args := m.Called(ctx, name, baseSHA)
	return args.Error(0)
}

func (m *repoMock) GetTagSHA(ctx context.Context, tag string) (string, error) {
	args := m.Called(ctx, tag)
	return args.String(0), args.Error(1)
}

func (m *repoMock) CreateChangeRequest(ctx context.Context, title, body, head, base string) (*entities.ChangeRequest, error) {
	args := m.Called(ctx, title, body, head, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChangeRequest), args.Error(1)
}

func (m *repoMock) ListOpenChangeRequests(ctx context.Context, head, base string) ([]entities.ChangeRequest, error) {
	args := m.Called(ctx, head, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChangeRequest), args.Error(1)
}

func (m *repoMock) ApproveChangeRequest(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *repoMock) ListReviews(ctx context.Context, number int) ([]entities.Review, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Review), args.Error(1)
}

func (m *repoMock) MergeChangeRequest(ctx context.Context, number int, title, message, method string) (bool, string, error) {
	args := m.Called(ctx, number, title, message, method)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *repoMock) ListCheckSuites(ctx context.Context, sha string) ([]entities.CheckSuite, error) {
	args := m.Called(ctx, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CheckSuite), args.Error(1)
}

func (m *repoMock) ListCheckRuns(ctx context.Context, suiteID int64) ([]entities.CheckRun, error) {
	args := m.Called(ctx, suiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.CheckRun), args.Error(1)
}

func (m *repoMock) CreateCommitStatus(ctx context.Context, sha string, status entities.CommitStatusRecord) error {
	args := m.Called(ctx, sha, status)
	return args.Error(0)
}

type hostMock struct{ mock.Mock }

var _ githost.Host = (*hostMock)(nil)

func (m *hostMock) GetRepository(ctx context.Context, owner, name string) (githost.Repository, error) {
	args := m.Called(ctx, owner, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(githost.Repository), args.Error(1)
}

// fakeClock records sleeps without blocking.
type fakeClock struct {
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time { return time.Unix(0, 0) }

func (f *fakeClock) Sleep(_ context.Context, d time.Duration) error {
	f.sleeps = append(f.sleeps, d)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Checks: config.ChecksConfig{
			SettleDelay:  10 * time.Second,
			PollInterval: 60 * time.Second,
			MaxPolls:     100,
		},
		Mirror: config.MirrorConfig{
			PollInterval: 30 * time.Second,
			MaxPolls:     100,
		},
		Merge: config.MergeConfig{
			ApprovalDelay: 10 * time.Second,
			RolloutDelay:  45 * time.Second,
		},
		Health: config.HealthConfig{
			MaxAttempts:    10,
			RetryWait:      30 * time.Second,
			RequestTimeout: time.Second,
		},
	}
}

func newTestUsecase(host, bot githost.Host, cfg *config.Config) (*Usecase, *fakeClock) {
	clk := &fakeClock{}
	return New(zap.NewNop().Sugar(), host, bot, cfg, clk), clk
}
