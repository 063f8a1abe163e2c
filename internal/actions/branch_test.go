package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/githubclt"
)

func TestUpdateBranchUpToDateIsNoop(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		BranchBehindBy(gomock.Any(), repoOwner, repo, "main", headSHA).
		Return(0, nil)
	// UpdateBranch must not be called for an up-to-date branch

	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindUpdateBranch, 42, nil))
	require.NoError(t, err)
	assert.Equal(t, false, result["updated"])
}

func TestUpdateBranchBehindBaseIsUpdated(t *testing.T) {
	registry, clt := newTestRegistry(t)

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(newOpenPullRequest(42), nil)
	clt.EXPECT().
		BranchBehindBy(gomock.Any(), repoOwner, repo, "main", headSHA).
		Return(3, nil)
	clt.EXPECT().
		UpdateBranch(gomock.Any(), repoOwner, repo, 42, headSHA).
		Return(&githubclt.UpdateBranchResult{Scheduled: true}, nil)

	act := newAction(actionqueue.KindUpdateBranch, 42, map[string]any{"method": "merge"})

	result, err := registry.Dispatch(context.Background(), act)
	require.NoError(t, err)
	assert.Equal(t, true, result["updated"])
	assert.Equal(t, true, result["scheduled"])
	assert.Equal(t, 3, result["behind_by"])
	assert.Equal(t, "merge", result["method"])
}

func TestUpdateBranchClosedPRIsPreconditionError(t *testing.T) {
	registry, clt := newTestRegistry(t)

	pr := newOpenPullRequest(42)
	pr.State = strPtr("closed")

	clt.EXPECT().
		GetPullRequest(gomock.Any(), repoOwner, repo, 42).
		Return(pr, nil)

	_, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindUpdateBranch, 42, nil))

	var preconditionErr *PreconditionError
	require.ErrorAs(t, err, &preconditionErr)
}

func TestSquashCommitsIsUnsupported(t *testing.T) {
	registry, _ := newTestRegistry(t)

	result, err := registry.Dispatch(context.Background(), newAction(actionqueue.KindSquashCommits, 42, nil))
	require.NoError(t, err)
	assert.Equal(t, false, result["supported"])
}
