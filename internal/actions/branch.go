package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// branchHandler brings pull request branches up to date with their base
// branch.
// If the branch is already up to date, no update is requested, updating an
// up-to-date branch would create an empty merge commit.
type branchHandler struct {
	clt GithubClient
}

func (h *branchHandler) Name() string { return "branch" }

func (h *branchHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	if act.Kind == actionqueue.KindSquashCommits {
		// squashing the commits of a PR branch requires rewriting it
		// via the git data API, which this daemon does not do
		return map[string]any{
			"supported": false,
			"reason":    "squashing commits is not supported",
		}, nil
	}

	method, exist, err := strParam(act.Params, "method")
	if err != nil {
		return nil, err
	}

	if !exist {
		method = "merge"
		if act.Kind == actionqueue.KindRebaseBranch {
			method = "rebase"
		}
	}

	pr, err := h.clt.GetPullRequest(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	if pr == nil {
		return nil, newPreconditionError("pull request %s/%s#%d does not exist", act.Owner, act.Repo, act.Number)
	}

	if pr.GetState() != "open" {
		return nil, newPreconditionError("pull request is %s, only open pull request branches are updated", pr.GetState())
	}

	base := pr.GetBase().GetRef()
	headSHA := pr.GetHead().GetSHA()

	behindBy, err := h.clt.BranchBehindBy(ctx, act.Owner, act.Repo, base, headSHA)
	if err != nil {
		return nil, err
	}

	if behindBy == 0 {
		return map[string]any{
			"updated": false,
			"reason":  "branch is up to date with base branch",
		}, nil
	}

	result, err := h.clt.UpdateBranch(ctx, act.Owner, act.Repo, act.Number, headSHA)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"updated":   true,
		"scheduled": result.Scheduled,
		"method":    method,
		"behind_by": behindBy,
	}, nil
}
