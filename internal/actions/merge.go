package actions

import (
	"context"
	"strings"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/githubclt"
)

// mergeHandler merges pull requests.
// The action kind selects the merge method, an explicit method parameter
// overrides it. Unless skip_checks is set, merging is refused while a
// required check of the base branch is failing or did not finish.
type mergeHandler struct {
	clt GithubClient
}

func (h *mergeHandler) Name() string { return "merge" }

func (h *mergeHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	method, err := h.mergeMethod(act)
	if err != nil {
		return nil, err
	}

	pr, err := h.clt.GetPullRequest(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	if pr == nil {
		return nil, newPreconditionError("pull request %s/%s#%d does not exist", act.Owner, act.Repo, act.Number)
	}

	if pr.GetState() != "open" {
		return nil, newPreconditionError("pull request is %s, only open pull requests can be merged", pr.GetState())
	}

	if pr.Mergeable == nil {
		// github computes mergeability lazily, the field is unset
		// directly after a push
		return nil, newPreconditionError("mergeable state is not computed yet")
	}

	if !pr.GetMergeable() {
		return nil, newPreconditionError("pull request is not mergeable, state: %q", pr.GetMergeableState())
	}

	skipChecks, err := boolParam(act.Params, "skip_checks")
	if err != nil {
		return nil, err
	}

	if !skipChecks {
		if err := h.ensureRequiredChecksSucceeded(ctx, act); err != nil {
			return nil, err
		}
	}

	commitMessage, _, err := strParam(act.Params, "commit_message")
	if err != nil {
		return nil, err
	}

	result, err := h.clt.MergePullRequest(ctx, act.Owner, act.Repo, act.Number, method, commitMessage)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"merged":  result.Merged,
		"sha":     result.SHA,
		"method":  method,
		"message": result.Message,
	}, nil
}

func (h *mergeHandler) mergeMethod(act *actionqueue.Action) (string, error) {
	method, exist, err := strParam(act.Params, "method")
	if err != nil {
		return "", err
	}

	if exist {
		switch method {
		case "merge", "squash", "rebase":
			return method, nil
		default:
			return "", newValidationError("unknown merge method: %q", method)
		}
	}

	switch act.Kind {
	case actionqueue.KindSquashMerge:
		return "squash", nil
	case actionqueue.KindRebaseMerge:
		return "rebase", nil
	default:
		return "merge", nil
	}
}

func (h *mergeHandler) ensureRequiredChecksSucceeded(ctx context.Context, act *actionqueue.Action) error {
	status, err := h.clt.PRCIStatus(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return err
	}

	if failed := status.FailedRequiredChecks(); len(failed) > 0 {
		return newPreconditionError("required checks failed: %s", strings.Join(failed, ", "))
	}

	if pending := status.PendingRequiredChecks(); len(pending) > 0 {
		return newPreconditionError("required checks did not finish: %s", strings.Join(pending, ", "))
	}

	if status.Overall == githubclt.CIStatusPending {
		return newPreconditionError("check rollup state is pending")
	}

	return nil
}
