package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/logfields"
)

const loggerName = "actions"

// Handler executes the remote operation behind one or more action kinds.
// Run returns the result payload of the action or an error. Per-item
// failures inside batch operations are reported in the result payload, only
// failures of the action as a whole are returned as error.
type Handler interface {
	Name() string
	Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error)
}

// Registry maps every action kind to its handler.
// It implements actionqueue.Dispatcher.
type Registry struct {
	handlers map[actionqueue.Kind]Handler
	logger   *zap.Logger
}

func NewRegistry(clt GithubClient) *Registry {
	merge := &mergeHandler{clt: clt}
	branch := &branchHandler{clt: clt}
	checks := &checksHandler{clt: clt}
	labels := &labelsHandler{clt: clt}
	comments := &commentsHandler{clt: clt}
	suggestions := &suggestionsHandler{}
	reviews := &reviewsHandler{clt: clt}
	mergeQueue := &mergeQueueHandler{clt: clt}
	issues := &issuesHandler{clt: clt}
	assignees := &assigneesHandler{clt: clt}
	milestones := &milestonesHandler{clt: clt}

	return &Registry{
		logger: zap.L().Named(loggerName),
		handlers: map[actionqueue.Kind]Handler{
			actionqueue.KindMergePR:     merge,
			actionqueue.KindSquashMerge: merge,
			actionqueue.KindRebaseMerge: merge,

			actionqueue.KindUpdateBranch:  branch,
			actionqueue.KindRebaseBranch:  branch,
			actionqueue.KindSquashCommits: branch,

			actionqueue.KindRerunChecks:       checks,
			actionqueue.KindRerunFailedChecks: checks,
			actionqueue.KindSkipChecks:        checks,

			actionqueue.KindAddLabel:    labels,
			actionqueue.KindRemoveLabel: labels,
			actionqueue.KindSyncLabels:  labels,

			actionqueue.KindCreateComment:  comments,
			actionqueue.KindEditComment:    comments,
			actionqueue.KindDeleteComment:  comments,
			actionqueue.KindResolveComment: comments,

			actionqueue.KindApplySuggestion:  suggestions,
			actionqueue.KindCommitSuggestion: suggestions,
			actionqueue.KindBatchSuggestion:  suggestions,

			actionqueue.KindRequestReview:  reviews,
			actionqueue.KindApprovePR:      reviews,
			actionqueue.KindRequestChanges: reviews,
			actionqueue.KindDismissReview:  reviews,

			actionqueue.KindAddToMergeQueue:      mergeQueue,
			actionqueue.KindRemoveFromMergeQueue: mergeQueue,

			actionqueue.KindOpenIssue:  issues,
			actionqueue.KindCloseIssue: issues,
			actionqueue.KindLinkIssue:  issues,

			actionqueue.KindAssignUser:   assignees,
			actionqueue.KindUnassignUser: assignees,

			actionqueue.KindAddMilestone:    milestones,
			actionqueue.KindRemoveMilestone: milestones,
		},
	}
}

// Dispatch resolves the handler for the action's kind and runs it.
func (r *Registry) Dispatch(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	handler, exist := r.handlers[act.Kind]
	if !exist {
		return nil, fmt.Errorf("no handler registered for action kind %q", act.Kind)
	}

	r.logger.Debug(
		"dispatching action",
		logfields.Event("action_dispatched"),
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
		zap.String("handler", handler.Name()),
	)

	return handler.Run(ctx, act)
}
