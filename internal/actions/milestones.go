package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// milestonesHandler sets and clears the milestone of pull requests and
// issues.
type milestonesHandler struct {
	clt GithubClient
}

func (h *milestonesHandler) Name() string { return "milestones" }

func (h *milestonesHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	if act.Kind == actionqueue.KindRemoveMilestone {
		if err := h.clt.RemoveMilestone(ctx, act.Owner, act.Repo, act.Number); err != nil {
			return nil, err
		}

		return map[string]any{"milestone": nil}, nil
	}

	milestone, err := requireInt64Param(act.Params, "milestone")
	if err != nil {
		return nil, err
	}

	if err := h.clt.SetMilestone(ctx, act.Owner, act.Repo, act.Number, int(milestone)); err != nil {
		return nil, err
	}

	return map[string]any{"milestone": milestone}, nil
}
