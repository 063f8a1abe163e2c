package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// Labels that sync-labels manages. Only these are ever added or removed by
// the reconciliation, labels set by humans are not touched.
const (
	labelWorkInProgress = "work-in-progress"
	labelNeedsRebase    = "needs-rebase"
)

// labelsHandler adds, removes and reconciles pull request labels.
// Removals are executed per label, individual failures are collected in the
// result instead of failing the action.
type labelsHandler struct {
	clt GithubClient
}

func (h *labelsHandler) Name() string { return "labels" }

func (h *labelsHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	switch act.Kind {
	case actionqueue.KindAddLabel:
		return h.add(ctx, act)
	case actionqueue.KindRemoveLabel:
		return h.remove(ctx, act)
	default:
		return h.sync(ctx, act)
	}
}

func (h *labelsHandler) add(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	labels, err := requireStrSliceParam(act.Params, "labels")
	if err != nil {
		return nil, err
	}

	if err := h.clt.AddLabels(ctx, act.Owner, act.Repo, act.Number, labels); err != nil {
		return nil, err
	}

	return map[string]any{"added": labels}, nil
}

func (h *labelsHandler) remove(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	labels, err := requireStrSliceParam(act.Params, "labels")
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(labels))
	removeErrors := map[string]any{}

	for _, label := range labels {
		if err := h.clt.RemoveLabel(ctx, act.Owner, act.Repo, act.Number, label); err != nil {
			removeErrors[label] = err.Error()
			continue
		}

		removed = append(removed, label)
	}

	current, err := h.clt.ListLabels(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"removed":        removed,
		"current_labels": current,
	}
	if len(removeErrors) > 0 {
		result["errors"] = removeErrors
	}

	return result, nil
}

// sync reconciles the managed label set with the pull request state:
// work-in-progress for draft PRs, needs-rebase while the mergeable state is
// dirty.
func (h *labelsHandler) sync(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	pr, err := h.clt.GetPullRequest(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	if pr == nil {
		return nil, newPreconditionError("pull request %s/%s#%d does not exist", act.Owner, act.Repo, act.Number)
	}

	current, err := h.clt.ListLabels(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	currentSet := make(map[string]struct{}, len(current))
	for _, label := range current {
		currentSet[label] = struct{}{}
	}

	wanted := map[string]bool{
		labelWorkInProgress: pr.GetDraft(),
		labelNeedsRebase:    pr.GetMergeableState() == "dirty",
	}

	var toAdd []string
	var toRemove []string

	for label, want := range wanted {
		_, isSet := currentSet[label]

		if want && !isSet {
			toAdd = append(toAdd, label)
		}

		if !want && isSet {
			toRemove = append(toRemove, label)
		}
	}

	if len(toAdd) > 0 {
		if err := h.clt.AddLabels(ctx, act.Owner, act.Repo, act.Number, toAdd); err != nil {
			return nil, err
		}
	}

	syncErrors := map[string]any{}
	removed := make([]string, 0, len(toRemove))

	for _, label := range toRemove {
		if err := h.clt.RemoveLabel(ctx, act.Owner, act.Repo, act.Number, label); err != nil {
			syncErrors[label] = err.Error()
			continue
		}

		removed = append(removed, label)
	}

	result := map[string]any{
		"added":   emptyIfNil(toAdd),
		"removed": removed,
	}
	if len(syncErrors) > 0 {
		result["errors"] = syncErrors
	}

	return result, nil
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}

	return list
}
