package actions

import (
	"context"

	"github.com/merganser/merganser/internal/actionqueue"
)

// commentsHandler creates, edits and deletes issue comments.
// Resolving a review comment thread requires a GraphQL mutation that is not
// implemented, the handler validates the comment and reports the operation
// as unsupported instead of failing.
type commentsHandler struct {
	clt GithubClient
}

func (h *commentsHandler) Name() string { return "comments" }

func (h *commentsHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	switch act.Kind {
	case actionqueue.KindCreateComment:
		return h.create(ctx, act)
	case actionqueue.KindEditComment:
		return h.edit(ctx, act)
	case actionqueue.KindDeleteComment:
		return h.delete(ctx, act)
	default:
		return h.resolve(ctx, act)
	}
}

func (h *commentsHandler) create(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	body, err := requireStrParam(act.Params, "body")
	if err != nil {
		return nil, err
	}

	commentID, err := h.clt.CreateIssueComment(ctx, act.Owner, act.Repo, act.Number, body)
	if err != nil {
		return nil, err
	}

	return map[string]any{"comment_id": commentID}, nil
}

func (h *commentsHandler) edit(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	commentID, err := requireInt64Param(act.Params, "comment_id")
	if err != nil {
		return nil, err
	}

	body, err := requireStrParam(act.Params, "body")
	if err != nil {
		return nil, err
	}

	if err := h.clt.EditIssueComment(ctx, act.Owner, act.Repo, commentID, body); err != nil {
		return nil, err
	}

	return map[string]any{"comment_id": commentID, "edited": true}, nil
}

func (h *commentsHandler) delete(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	commentID, err := requireInt64Param(act.Params, "comment_id")
	if err != nil {
		return nil, err
	}

	if err := h.clt.DeleteIssueComment(ctx, act.Owner, act.Repo, commentID); err != nil {
		return nil, err
	}

	return map[string]any{"comment_id": commentID, "deleted": true}, nil
}

func (h *commentsHandler) resolve(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	commentID, err := requireInt64Param(act.Params, "comment_id")
	if err != nil {
		return nil, err
	}

	comment, err := h.clt.GetReviewComment(ctx, act.Owner, act.Repo, commentID)
	if err != nil {
		return nil, err
	}

	if comment == nil {
		return nil, newPreconditionError("review comment %d does not exist", commentID)
	}

	return map[string]any{
		"comment_id": commentID,
		"supported":  false,
		"reason":     "resolving review threads requires the github GraphQL API",
	}, nil
}
