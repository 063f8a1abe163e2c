package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// reviewsHandler requests, submits and dismisses pull request reviews.
type reviewsHandler struct {
	clt GithubClient
}

func (h *reviewsHandler) Name() string { return "reviews" }

func (h *reviewsHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	switch act.Kind {
	case actionqueue.KindRequestReview:
		return h.requestReview(ctx, act)

	case actionqueue.KindApprovePR:
		return h.submitReview(ctx, act, "APPROVE")

	case actionqueue.KindRequestChanges:
		return h.submitReview(ctx, act, "REQUEST_CHANGES")

	default:
		return h.dismissReview(ctx, act)
	}
}

func (h *reviewsHandler) requestReview(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	reviewers, err := requireStrSliceParam(act.Params, "reviewers")
	if err != nil {
		return nil, err
	}

	if err := h.clt.RequestReviewers(ctx, act.Owner, act.Repo, act.Number, reviewers); err != nil {
		return nil, err
	}

	return map[string]any{"requested_reviewers": reviewers}, nil
}

func (h *reviewsHandler) submitReview(ctx context.Context, act *actionqueue.Action, event string) (map[string]any, error) {
	body, _, err := strParam(act.Params, "body")
	if err != nil {
		return nil, err
	}

	// github rejects change requests without an explanation
	if event == "REQUEST_CHANGES" && body == "" {
		return nil, newValidationError("required parameter %q is missing", "body")
	}

	reviewID, err := h.clt.CreateReview(ctx, act.Owner, act.Repo, act.Number, event, body)
	if err != nil {
		return nil, err
	}

	return map[string]any{"review_id": reviewID, "event": event}, nil
}

func (h *reviewsHandler) dismissReview(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	reviewID, err := requireInt64Param(act.Params, "review_id")
	if err != nil {
		return nil, err
	}

	message, err := requireStrParam(act.Params, "message")
	if err != nil {
		return nil, err
	}

	if err := h.clt.DismissReview(ctx, act.Owner, act.Repo, act.Number, reviewID, message); err != nil {
		return nil, err
	}

	return map[string]any{"review_id": reviewID, "dismissed": true}, nil
}
