package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/logfields"
)

const loggerName = "webhook"

// Enqueuer accepts the actions that interpreted deliveries produce.
// It is implemented by actionqueue.Queue.
type Enqueuer interface {
	Enqueue(req *actionqueue.EnqueueRequest) (id string, deduplicated bool, err error)
}

// Provider receives github webhook deliveries at an http handler, verifies
// their signature and interprets them into queued actions.
// Interpretation runs the compiled-in rules first, then the operator-defined
// rules from the configuration.
type Provider struct {
	logger        *zap.Logger
	secret        []byte
	enqueuer      Enqueuer
	triggerLabels map[string]struct{}
	rules         []*Rule
}

type option func(*Provider)

// WithPayloadSecret enables HMAC-SHA256 signature verification of deliveries.
func WithPayloadSecret(secret string) option {
	return func(p *Provider) {
		p.secret = []byte(secret)
	}
}

// WithMergeQueueTriggerLabels replaces the label allow-list that triggers
// add-to-merge-queue actions.
func WithMergeQueueTriggerLabels(labels []string) option {
	return func(p *Provider) {
		p.triggerLabels = make(map[string]struct{}, len(labels))
		for _, label := range labels {
			p.triggerLabels[label] = struct{}{}
		}
	}
}

// WithRules adds operator-defined rules that are evaluated for every
// authenticated delivery.
func WithRules(rules []*Rule) option {
	return func(p *Provider) {
		p.rules = rules
	}
}

func New(enqueuer Enqueuer, opts ...option) *Provider {
	p := Provider{
		logger:        zap.L().Named(loggerName),
		enqueuer:      enqueuer,
		triggerLabels: map[string]struct{}{},
	}

	for _, o := range opts {
		o(&p)
	}

	if len(p.secret) == 0 {
		p.logger.Warn(
			"no webhook secret configured, signature verification is disabled",
			logfields.Event("webhook_verification_disabled"),
		)
	}

	return &p
}

// Handler verifies and interprets a webhook delivery.
// Deliveries that fail signature verification are rejected with 401 and do
// not enqueue anything. Unknown event types are acknowledged and ignored.
func (p *Provider) Handler(resp http.ResponseWriter, req *http.Request) {
	deliveryID := github.DeliveryID(req)
	eventType := github.WebHookType(req)

	logger := p.logger.With(
		logfields.DeliveryID(deliveryID),
		logfields.EventType(eventType),
	)

	payload, err := github.ValidatePayload(req, p.secret)
	if err != nil {
		logger.Info(
			"rejecting delivery, signature verification failed",
			logfields.Event("webhook_signature_invalid"),
			zap.Error(err),
		)
		eventsTotal.WithLabelValues(eventType, outcomeRejected).Inc()

		writeJSON(resp, http.StatusUnauthorized, map[string]any{
			"error": "signature verification failed",
		})
		return
	}

	var requests []*actionqueue.EnqueueRequest

	event, err := github.ParseWebHook(eventType, payload)
	switch {
	case err == nil:
		requests = p.interpret(logger, event)

	case isUnknownEventErr(err):
		logger.Debug(
			"ignoring delivery, event type is unsupported",
			logfields.Event("webhook_event_unsupported"),
		)

	default:
		logger.Info(
			"rejecting delivery, parsing payload failed",
			logfields.Event("webhook_payload_invalid"),
			zap.Error(err),
		)
		eventsTotal.WithLabelValues(eventType, outcomeInvalid).Inc()

		writeJSON(resp, http.StatusBadRequest, map[string]any{
			"error": "parsing payload failed",
		})
		return
	}

	if len(p.rules) > 0 {
		requests = append(requests, p.evalRules(req.Context(), logger, eventType, deliveryID, payload)...)
	}

	for _, enqueueReq := range requests {
		id, deduplicated, err := p.enqueuer.Enqueue(enqueueReq)
		if err != nil {
			logger.Error(
				"enqueueing action for delivery failed",
				logfields.Event("webhook_enqueue_failed"),
				logfields.ActionKind(string(enqueueReq.Kind)),
				zap.Error(err),
			)
			continue
		}

		logger.Debug(
			"delivery enqueued an action",
			logfields.Event("webhook_action_enqueued"),
			logfields.ActionID(id),
			logfields.ActionKind(string(enqueueReq.Kind)),
			zap.Bool("deduplicated", deduplicated),
		)
	}

	if len(requests) > 0 {
		eventsTotal.WithLabelValues(eventType, outcomeEnqueued).Inc()
	} else {
		eventsTotal.WithLabelValues(eventType, outcomeIgnored).Inc()
	}

	writeJSON(resp, http.StatusOK, map[string]any{"status": "received"})
}

// interpret applies the compiled-in rules to a parsed delivery.
func (p *Provider) interpret(logger *zap.Logger, event any) []*actionqueue.EnqueueRequest {
	switch event := event.(type) {
	case *github.PullRequestEvent:
		return p.interpretPullRequest(event)

	case *github.IssueCommentEvent:
		return p.interpretIssueComment(event)

	case *github.PullRequestReviewCommentEvent:
		return p.interpretReviewComment(event)

	case *github.PullRequestReviewEvent:
		// no compiled-in rule enqueues anything for reviews

	case *github.CheckSuiteEvent:
		p.logFailedRun(logger, "check_suite",
			event.GetCheckSuite().GetStatus(), event.GetCheckSuite().GetConclusion(),
			event.GetRepo(),
		)

	case *github.CheckRunEvent:
		p.logFailedRun(logger, "check_run",
			event.GetCheckRun().GetStatus(), event.GetCheckRun().GetConclusion(),
			event.GetRepo(),
		)

	case *github.WorkflowRunEvent:
		p.logFailedRun(logger, "workflow_run",
			event.GetWorkflowRun().GetStatus(), event.GetWorkflowRun().GetConclusion(),
			event.GetRepo(),
		)

	default:
		logger.Debug(
			"ignoring delivery, event type is unsupported",
			logfields.Event("webhook_event_unsupported"),
		)
	}

	return nil
}

func (p *Provider) interpretPullRequest(event *github.PullRequestEvent) []*actionqueue.EnqueueRequest {
	repo := event.GetRepo()
	pr := event.GetPullRequest()

	base := &actionqueue.EnqueueRequest{
		Owner:       repo.GetOwner().GetLogin(),
		Repo:        repo.GetName(),
		Number:      pr.GetNumber(),
		TriggeredBy: "webhook:pull_request." + event.GetAction(),
	}

	switch event.GetAction() {
	case "opened":
		base.Kind = actionqueue.KindSyncLabels
		base.Priority = actionqueue.PriorityBackground
		return []*actionqueue.EnqueueRequest{base}

	case "synchronize":
		if pr.GetMergeableState() != "behind" {
			return nil
		}

		base.Kind = actionqueue.KindUpdateBranch
		base.Priority = actionqueue.PriorityHigh
		base.Params = map[string]any{"method": "merge"}
		return []*actionqueue.EnqueueRequest{base}

	case "labeled":
		if _, allowed := p.triggerLabels[event.GetLabel().GetName()]; !allowed {
			return nil
		}

		base.Kind = actionqueue.KindAddToMergeQueue
		base.Priority = actionqueue.PriorityHigh
		return []*actionqueue.EnqueueRequest{base}

	case "ready_for_review":
		base.Kind = actionqueue.KindSyncLabels
		base.Priority = actionqueue.PriorityNormal
		return []*actionqueue.EnqueueRequest{base}
	}

	return nil
}

// interpretIssueComment scans new comments on pull requests for command
// substrings. Comments on plain issues are ignored.
func (p *Provider) interpretIssueComment(event *github.IssueCommentEvent) []*actionqueue.EnqueueRequest {
	if event.GetAction() != "created" {
		return nil
	}

	if !event.GetIssue().IsPullRequest() {
		return nil
	}

	repo := event.GetRepo()
	body := event.GetComment().GetBody()
	triggeredBy := "comment-command by " + event.GetComment().GetUser().GetLogin()

	var result []*actionqueue.EnqueueRequest

	if strings.Contains(body, "/update-branch") {
		result = append(result, &actionqueue.EnqueueRequest{
			Kind:        actionqueue.KindUpdateBranch,
			Owner:       repo.GetOwner().GetLogin(),
			Repo:        repo.GetName(),
			Number:      event.GetIssue().GetNumber(),
			Priority:    actionqueue.PriorityHigh,
			TriggeredBy: triggeredBy,
		})
	}

	if strings.Contains(body, "/rerun-checks") {
		result = append(result, &actionqueue.EnqueueRequest{
			Kind:        actionqueue.KindRerunChecks,
			Owner:       repo.GetOwner().GetLogin(),
			Repo:        repo.GetName(),
			Number:      event.GetIssue().GetNumber(),
			Priority:    actionqueue.PriorityNormal,
			TriggeredBy: triggeredBy,
		})
	}

	return result
}

func (p *Provider) interpretReviewComment(event *github.PullRequestReviewCommentEvent) []*actionqueue.EnqueueRequest {
	if event.GetAction() != "created" {
		return nil
	}

	if !strings.Contains(event.GetComment().GetBody(), "/resolve") {
		return nil
	}

	repo := event.GetRepo()

	return []*actionqueue.EnqueueRequest{{
		Kind:        actionqueue.KindResolveComment,
		Owner:       repo.GetOwner().GetLogin(),
		Repo:        repo.GetName(),
		Number:      event.GetPullRequest().GetNumber(),
		Params:      map[string]any{"comment_id": event.GetComment().GetID()},
		Priority:    actionqueue.PriorityNormal,
		TriggeredBy: "comment-command by " + event.GetComment().GetUser().GetLogin(),
	}}
}

// logFailedRun records failed CI runs. No action is enqueued for them, the
// log line is the hook point for a future remove-from-merge-queue policy.
func (p *Provider) logFailedRun(logger *zap.Logger, runType, status, conclusion string, repo *github.Repository) {
	if status != "completed" || conclusion != "failure" {
		return
	}

	logger.Info(
		"ci run failed",
		logfields.Event("webhook_ci_run_failed"),
		zap.String("run_type", runType),
		logfields.RepositoryOwner(repo.GetOwner().GetLogin()),
		logfields.Repository(repo.GetName()),
	)
}

// evalRules runs the operator-defined rules against the raw delivery.
func (p *Provider) evalRules(ctx context.Context, logger *zap.Logger, eventType, deliveryID string, payload []byte) []*actionqueue.EnqueueRequest {
	event := newEvent(eventType, deliveryID, payload)

	var result []*actionqueue.EnqueueRequest

	for _, rule := range p.rules {
		requests, err := rule.EnqueueRequests(ctx, event)
		if err != nil {
			logger.Error(
				"evaluating rule for delivery failed",
				logfields.Event("webhook_rule_eval_failed"),
				zap.String("rule", rule.Name()),
				zap.Error(err),
			)
			continue
		}

		if len(requests) == 0 {
			continue
		}

		logger.Debug(
			"rule matched delivery",
			logfields.Event("webhook_rule_matched"),
			zap.String("rule", rule.Name()),
		)

		result = append(result, requests...)
	}

	return result
}

// isUnknownEventErr reports if ParseWebHook failed because the X-GitHub-Event
// value has no payload type. go-github returns no typed error for this case,
// the message is the only discriminator.
func isUnknownEventErr(err error) bool {
	return strings.Contains(err.Error(), "unknown X-Github-Event")
}

func writeJSON(resp http.ResponseWriter, statusCode int, body map[string]any) {
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(statusCode)
	_ = json.NewEncoder(resp).Encode(body)
}
