package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// assigneesHandler assigns and unassigns users on pull requests and issues.
type assigneesHandler struct {
	clt GithubClient
}

func (h *assigneesHandler) Name() string { return "assignees" }

func (h *assigneesHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	assignees, err := requireStrSliceParam(act.Params, "assignees")
	if err != nil {
		return nil, err
	}

	if act.Kind == actionqueue.KindUnassignUser {
		if err := h.clt.RemoveAssignees(ctx, act.Owner, act.Repo, act.Number, assignees); err != nil {
			return nil, err
		}

		return map[string]any{"unassigned": assignees}, nil
	}

	if err := h.clt.AddAssignees(ctx, act.Owner, act.Repo, act.Number, assignees); err != nil {
		return nil, err
	}

	return map[string]any{"assigned": assignees}, nil
}
