package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// suggestionsHandler covers the apply/commit/batch suggestion kinds.
// Applying review suggestions is only possible through the github GraphQL
// API surface that this daemon does not implement. Parameters are still
// validated so malformed actions fail loudly, valid ones complete with an
// unsupported result.
type suggestionsHandler struct{}

func (h *suggestionsHandler) Name() string { return "suggestions" }

func (h *suggestionsHandler) Run(_ context.Context, act *actionqueue.Action) (map[string]any, error) {
	const reason = "applying suggestions requires the github GraphQL API"

	if act.Kind == actionqueue.KindBatchSuggestion {
		commentIDs, err := int64SliceParam(act.Params, "comment_ids")
		if err != nil {
			return nil, err
		}

		if len(commentIDs) == 0 {
			return nil, newValidationError("required parameter %q is missing or empty", "comment_ids")
		}

		return map[string]any{
			"comment_ids": commentIDs,
			"supported":   false,
			"reason":      reason,
		}, nil
	}

	commentID, err := requireInt64Param(act.Params, "comment_id")
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"comment_id": commentID,
		"supported":  false,
		"reason":     reason,
	}, nil
}
