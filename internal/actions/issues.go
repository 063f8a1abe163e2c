package actions

import (
	"context"
	"fmt"

	"github.com/merganser/merganser/internal/actionqueue"
)

// issuesHandler opens, closes and cross-links issues.
// For open-issue and link-issue the action target number is the originating
// pull request, close-issue targets the issue itself.
type issuesHandler struct {
	clt GithubClient
}

func (h *issuesHandler) Name() string { return "issues" }

func (h *issuesHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	switch act.Kind {
	case actionqueue.KindOpenIssue:
		return h.open(ctx, act)
	case actionqueue.KindCloseIssue:
		return h.close(ctx, act)
	default:
		return h.link(ctx, act)
	}
}

func (h *issuesHandler) open(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	title, err := requireStrParam(act.Params, "title")
	if err != nil {
		return nil, err
	}

	body, _, err := strParam(act.Params, "body")
	if err != nil {
		return nil, err
	}

	labels, err := strSliceParam(act.Params, "labels")
	if err != nil {
		return nil, err
	}

	linkPR, err := boolParam(act.Params, "link_pr")
	if err != nil {
		return nil, err
	}

	if linkPR && act.Number > 0 {
		if body != "" {
			body += "\n\n"
		}

		body += fmt.Sprintf("Created from %s/%s#%d", act.Owner, act.Repo, act.Number)
	}

	issueNumber, err := h.clt.CreateIssue(ctx, act.Owner, act.Repo, title, body, labels)
	if err != nil {
		return nil, err
	}

	return map[string]any{"issue_number": issueNumber}, nil
}

func (h *issuesHandler) close(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	comment, _, err := strParam(act.Params, "comment")
	if err != nil {
		return nil, err
	}

	result := map[string]any{"issue_number": act.Number, "closed": true}

	if comment != "" {
		commentID, err := h.clt.CreateIssueComment(ctx, act.Owner, act.Repo, act.Number, comment)
		if err != nil {
			return nil, err
		}

		result["comment_id"] = commentID
	}

	if err := h.clt.CloseIssue(ctx, act.Owner, act.Repo, act.Number); err != nil {
		return nil, err
	}

	return result, nil
}

// link posts a cross-reference comment into the issue. Github renders the
// reference in the timelines of both sides.
func (h *issuesHandler) link(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	issueNumber, err := requireInt64Param(act.Params, "issue_number")
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Linked to pull request %s/%s#%d", act.Owner, act.Repo, act.Number)

	commentID, err := h.clt.CreateIssueComment(ctx, act.Owner, act.Repo, int(issueNumber), body)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"issue_number": issueNumber,
		"comment_id":   commentID,
	}, nil
}
