package promotion

import (
	"context"
	"fmt"
	"testing"

	"release-promoter/internal/entities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mirrorChangeRequest() *entities.ChangeRequest {
	return &entities.ChangeRequest{
		Number:  42,
		HeadSHA: "head-sha",
		URL:     "https://example.test/pr/42",
	}
}

func TestMirrorStatuses_TagAbsentIsNotAnError(t *testing.T) {
	remote, local := &repoMock{}, &repoMock{}
	uc, _ := newTestUsecase(&hostMock{}, &hostMock{}, testConfig())

	local.On("GetTagSHA", mock.Anything, "v1.2.3").Return("", fmt.Errorf("%w: v1.2.3", entities.ErrTagNotFound))

	err := uc.MirrorStatuses(context.Background(), remote, local, testRequest(false), mirrorChangeRequest())
	require.NoError(t, err)
	remote.AssertNotCalled(t, "ListCheckSuites", mock.Anything, mock.Anything)
	local.AssertNotCalled(t, "CreateCommitStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirrorStatuses_NoSuitesYetReturnsEarly(t *testing.T) {
	remote, local := &repoMock{}, &repoMock{}
	uc, _ := newTestUsecase(&hostMock{}, &hostMock{}, testConfig())

	local.On("GetTagSHA", mock.Anything, "v1.2.3").Return("local-sha", nil)
	remote.On("ListCheckSuites", mock.Anything, "head-sha").Return([]entities.CheckSuite{}, nil)

	err := uc.MirrorStatuses(context.Background(), remote, local, testRequest(false), mirrorChangeRequest())
	require.NoError(t, err)
	local.AssertNotCalled(t, "CreateCommitStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirrorStatuses_CompletedRunsAreRewrittenEveryIteration(t *testing.T) {
	remote, local := &repoMock{}, &repoMock{}
	uc, clk := newTestUsecase(&hostMock{}, &hostMock{}, testConfig())

	local.On("GetTagSHA", mock.Anything, "v1.2.3").Return("local-sha", nil)
	remote.On("ListCheckSuites", mock.Anything, "head-sha").Return([]entities.CheckSuite{{ID: 1}}, nil)
	remote.On("ListCheckRuns", mock.Anything, int64(1)).Return([]entities.CheckRun{
		run("build", entities.CheckCompleted, entities.ConclusionSuccess),
		run("test", entities.CheckInProgress, entities.ConclusionNone),
	}, nil).Once()
	remote.On("ListCheckRuns", mock.Anything, int64(1)).Return([]entities.CheckRun{
		run("build", entities.CheckCompleted, entities.ConclusionSuccess),
		run("test", entities.CheckCompleted, entities.ConclusionFailure),
	}, nil).Once()
	local.On("CreateCommitStatus", mock.Anything, "local-sha", mock.Anything).Return(nil)

	err := uc.MirrorStatuses(context.Background(), remote, local, testRequest(false), mirrorChangeRequest())
	require.NoError(t, err)

	// "build" is completed in both iterations and is written twice; "test" once.
	local.AssertNumberOfCalls(t, "CreateCommitStatus", 3)
	local.AssertCalled(t, "CreateCommitStatus", mock.Anything, "local-sha", entities.CommitStatusRecord{
		State:       entities.StateSuccess,
		TargetURL:   "https://example.test/pr/42",
		Description: "PR #42",
		Context:     "build / v1.2.3",
	})
	local.AssertCalled(t, "CreateCommitStatus", mock.Anything, "local-sha", entities.CommitStatusRecord{
		State:       entities.StateFailure,
		TargetURL:   "https://example.test/pr/42",
		Description: "PR #42",
		Context:     "test / v1.2.3",
	})
	require.Len(t, clk.sleeps, 1)
}

func TestMirrorStatuses_CompletedWithoutConclusionMirroredAsPending(t *testing.T) {
	remote, local := &repoMock{}, &repoMock{}
	uc, _ := newTestUsecase(&hostMock{}, &hostMock{}, testConfig())

	local.On("GetTagSHA", mock.Anything, "v1.2.3").Return("local-sha", nil)
	remote.On("ListCheckSuites", mock.Anything, "head-sha").Return([]entities.CheckSuite{{ID: 1}}, nil)
	remote.On("ListCheckRuns", mock.Anything, int64(1)).Return([]entities.CheckRun{
		run("odd", entities.CheckCompleted, entities.ConclusionNone),
	}, nil)
	local.On("CreateCommitStatus", mock.Anything, "local-sha", mock.MatchedBy(func(rec entities.CommitStatusRecord) bool {
		return rec.State == entities.StatePending && rec.Context == "odd / v1.2.3"
	})).Return(nil)

	err := uc.MirrorStatuses(context.Background(), remote, local, testRequest(false), mirrorChangeRequest())
	require.NoError(t, err)
	local.AssertNumberOfCalls(t, "CreateCommitStatus", 1)
}

func TestMirrorStatuses_PollBudgetExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.Mirror.MaxPolls = 2
	remote, local := &repoMock{}, &repoMock{}
	uc, clk := newTestUsecase(&hostMock{}, &hostMock{}, cfg)

	local.On("GetTagSHA", mock.Anything, "v1.2.3").Return("local-sha", nil)
	remote.On("ListCheckSuites", mock.Anything, "head-sha").Return([]entities.CheckSuite{{ID: 1}}, nil)
	remote.On("ListCheckRuns", mock.Anything, int64(1)).Return([]entities.CheckRun{
		run("build", entities.CheckInProgress, entities.ConclusionNone),
	}, nil)

	err := uc.MirrorStatuses(context.Background(), remote, local, testRequest(false), mirrorChangeRequest())
	require.ErrorIs(t, err, entities.ErrPollBudgetExhausted)
	require.Len(t, clk.sleeps, 1)
}
