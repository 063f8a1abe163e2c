package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/merganser/merganser/internal/actionqueue"
)

func TestRerunFailedChecksOnlyRerunsFailures(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		ListCheckRuns(gomock.Any(), repoOwner, repo, headSHA).
		Return([]*github.CheckRun{
			newCheckRun(1, "ci/tests", "failure"),
			newCheckRun(2, "ci/build", "success"),
			newCheckRun(3, "ci/deploy", "timed_out"),
		}, nil)
	clt.EXPECT().RerunCheckRun(gomock.Any(), repoOwner, repo, int64(1)).Return(nil)
	clt.EXPECT().RerunCheckRun(gomock.Any(), repoOwner, repo, int64(3)).Return(nil)

	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindRerunFailedChecks, 42, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, result["rerun_count"])
	assert.ElementsMatch(t, []string{"ci/tests", "ci/deploy"}, result["rerun"])
}

func TestRerunChecksFiltersByCheckIDs(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		ListCheckRuns(gomock.Any(), repoOwner, repo, headSHA).
		Return([]*github.CheckRun{
			newCheckRun(1, "ci/tests", "success"),
			newCheckRun(2, "ci/build", "success"),
		}, nil)
	clt.EXPECT().RerunCheckRun(gomock.Any(), repoOwner, repo, int64(2)).Return(nil)

	// ids arrive as float64 when the params come from a JSON payload
	act := newAction(actionqueue.KindRerunChecks, 42, map[string]any{"check_ids": []any{float64(2)}})

	result, err := registry.Dispatch(context.Background(), act)
	require.NoError(t, err)
	assert.Equal(t, []string{"ci/build"}, result["rerun"])
}

func TestRerunChecksAggregatesPerCheckErrors(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		ListCheckRuns(gomock.Any(), repoOwner, repo, headSHA).
		Return([]*github.CheckRun{
			newCheckRun(1, "ci/tests", "failure"),
			newCheckRun(2, "ci/build", "failure"),
		}, nil)
	clt.EXPECT().
		RerunCheckRun(gomock.Any(), repoOwner, repo, int64(1)).
		Return(errors.New("forbidden"))
	clt.EXPECT().RerunCheckRun(gomock.Any(), repoOwner, repo, int64(2)).Return(nil)

	// a failing rerun of one check must not fail the whole action
	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindRerunChecks, 42, map[string]any{"failed_only": true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"ci/build"}, result["rerun"])

	rerunErrors, ok := result["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "forbidden", rerunErrors["ci/tests"])
}

func TestSkipChecksStampsRequiredContexts(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		RequiredStatusChecks(gomock.Any(), repoOwner, repo, "main").
		Return([]string{"ci/tests", "ci/build"}, nil)
	clt.EXPECT().
		CreateCommitStatus(gomock.Any(), repoOwner, repo, headSHA, "ci/tests", "success", gomock.Any()).
		Return(nil)
	clt.EXPECT().
		CreateCommitStatus(gomock.Any(), repoOwner, repo, headSHA, "ci/build", "success", gomock.Any()).
		Return(nil)

	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindSkipChecks, 42, nil))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ci/tests", "ci/build"}, result["skipped"])
}

func TestSkipChecksWithoutRequiredChecksIsNoop(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		RequiredStatusChecks(gomock.Any(), repoOwner, repo, "main").
		Return(nil, nil)

	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindSkipChecks, 42, nil))
	require.NoError(t, err)
	assert.Empty(t, result["skipped"])
}
