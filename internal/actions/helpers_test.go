package actions

import (
	"testing"

	"github.com/google/go-github/v59/github"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/actions/mocks"
)

const repoOwner = "acme"
const repo = "widgets"
const headSHA = "f00ba4"
const prNodeID = "PR_node123"

func newTestRegistry(t *testing.T) (*Registry, *mocks.MockGithubClient) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	mockCtrl := gomock.NewController(t)
	clt := mocks.NewMockGithubClient(mockCtrl)

	return NewRegistry(clt), clt
}

func newAction(kind actionqueue.Kind, prNumber int, params map[string]any) *actionqueue.Action {
	return &actionqueue.Action{
		ID:          "test-action-id",
		Kind:        kind,
		Owner:       repoOwner,
		Repo:        repo,
		Number:      prNumber,
		Params:      params,
		TriggeredBy: "test",
	}
}

func strPtr(in string) *string { return &in }
func boolPtr(in bool) *bool    { return &in }

func newOpenPullRequest(prNumber int) *github.PullRequest {
	return &github.PullRequest{
		Number:    &prNumber,
		State:     strPtr("open"),
		NodeID:    strPtr(prNodeID),
		Mergeable: boolPtr(true),
		Base: &github.PullRequestBranch{
			Ref: strPtr("main"),
		},
		Head: &github.PullRequestBranch{
			Ref: strPtr("feature"),
			SHA: strPtr(headSHA),
		},
	}
}

func newCheckRun(id int64, name, conclusion string) *github.CheckRun {
	run := &github.CheckRun{
		ID:   &id,
		Name: &name,
	}
	if conclusion != "" {
		run.Conclusion = &conclusion
	}

	return run
}
