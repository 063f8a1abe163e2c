package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// mergeQueueHandler enters pull requests into the repository merge queue and
// removes them again.
// Github's merge queue is entered by enabling auto-merge on the pull
// request, which is a GraphQL-only mutation addressed by node id.
type mergeQueueHandler struct {
	clt GithubClient
}

func (h *mergeQueueHandler) Name() string { return "merge_queue" }

func (h *mergeQueueHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	pr, err := h.clt.GetPullRequest(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	if pr == nil {
		return nil, newPreconditionError("pull request %s/%s#%d does not exist", act.Owner, act.Repo, act.Number)
	}

	nodeID := pr.GetNodeID()
	if nodeID == "" {
		return nil, newPreconditionError("pull request has no node id")
	}

	if act.Kind == actionqueue.KindRemoveFromMergeQueue {
		if err := h.clt.DisableAutoMerge(ctx, nodeID); err != nil {
			return nil, err
		}

		return map[string]any{"in_merge_queue": false}, nil
	}

	if pr.GetState() != "open" {
		return nil, newPreconditionError("pull request is %s, only open pull requests can enter the merge queue", pr.GetState())
	}

	method, _, err := strParam(act.Params, "method")
	if err != nil {
		return nil, err
	}

	if err := h.clt.EnableAutoMerge(ctx, nodeID, method); err != nil {
		return nil, err
	}

	return map[string]any{"in_merge_queue": true}, nil
}
