// Package httpapi provides the control and status HTTP surface of the
// daemon: queue introspection, action cancellation, health and the mounting
// points for the webhook handler and the metrics endpoint.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/actionqueue"
	"github.com/merganser/merganser/internal/logfields"
)

const loggerName = "httpapi"

// RateLimitState reports the remaining github API request budget and its
// reset time, as tracked by the API client.
type RateLimitState func() (remaining int, reset time.Time)

type API struct {
	queue     *actionqueue.Queue
	pool      *actionqueue.Pool
	rateState RateLimitState
	retention time.Duration
	logger    *zap.Logger
}

type option func(*API)

// WithRateLimitState exposes the github rate budget in the health payload.
func WithRateLimitState(fn RateLimitState) option {
	return func(a *API) {
		a.rateState = fn
	}
}

// WithPurgeRetention sets how long terminal actions are kept when the purge
// endpoint is called.
func WithPurgeRetention(retention time.Duration) option {
	return func(a *API) {
		a.retention = retention
	}
}

func New(queue *actionqueue.Queue, pool *actionqueue.Pool, opts ...option) *API {
	a := API{
		queue:     queue,
		pool:      pool,
		retention: 24 * time.Hour,
		logger:    zap.L().Named(loggerName),
	}

	for _, o := range opts {
		o(&a)
	}

	return &a
}

// Router assembles the full http surface of the daemon.
// The webhook handler is mounted at webhookEndpoint, metrics at /metrics.
func (a *API) Router(webhookEndpoint string, webhookHandler http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)

	router.Post(webhookEndpoint, webhookHandler)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/queue", func(router chi.Router) {
		router.Get("/stats", a.stats)
		router.Get("/pr/{owner}/{repo}/{pr_number}", a.prActions)
		router.Get("/action/{action_id}", a.action)
		router.Post("/action/{action_id}/cancel", a.cancelAction)
		router.Post("/purge", a.purge)
	})

	router.Get("/health", a.health)

	return router
}

func (a *API) stats(resp http.ResponseWriter, _ *http.Request) {
	stats := a.queue.Stats()

	a.respond(resp, http.StatusOK, map[string]any{
		"queued":     stats.Queued,
		"processing": stats.Processing,
		"completed":  stats.Completed,
		"failed":     stats.Failed,
		"workers":    a.pool.WorkerCnt(),
		"running":    a.pool.Running(),
	})
}

func (a *API) prActions(resp http.ResponseWriter, req *http.Request) {
	owner := chi.URLParam(req, "owner")
	repo := chi.URLParam(req, "repo")

	number, err := strconv.Atoi(chi.URLParam(req, "pr_number"))
	if err != nil {
		a.respond(resp, http.StatusBadRequest, map[string]any{
			"error": "pr_number must be an integer",
		})
		return
	}

	actions := a.queue.ActionsFor(owner, repo, number)
	if actions == nil {
		actions = []*actionqueue.Action{}
	}

	a.respond(resp, http.StatusOK, map[string]any{
		"pr":      owner + "/" + repo + "#" + strconv.Itoa(number),
		"actions": actions,
	})
}

func (a *API) action(resp http.ResponseWriter, req *http.Request) {
	actionID := chi.URLParam(req, "action_id")

	act, err := a.queue.Status(actionID)
	if err != nil {
		if errors.Is(err, actionqueue.ErrNotFound) {
			a.respond(resp, http.StatusNotFound, map[string]any{
				"error": "Action not found",
			})
			return
		}

		a.respond(resp, http.StatusInternalServerError, map[string]any{
			"error": err.Error(),
		})
		return
	}

	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(resp).Encode(act); err != nil {
		a.logger.Error(
			"encoding action response failed",
			logfields.Event("http_response_encoding_failed"),
			logfields.ActionID(actionID),
			zap.Error(err),
		)
	}
}

func (a *API) cancelAction(resp http.ResponseWriter, req *http.Request) {
	actionID := chi.URLParam(req, "action_id")
	cancelled := a.queue.Cancel(actionID)

	a.respond(resp, http.StatusOK, map[string]any{"cancelled": cancelled})
}

func (a *API) health(resp http.ResponseWriter, _ *http.Request) {
	stats := a.queue.Stats()

	body := map[string]any{
		"status":        "healthy",
		"queue_running": a.pool.Running(),
		"queued":        stats.Queued,
		"processing":    stats.Processing,
		"completed":     stats.Completed,
		"failed":        stats.Failed,
	}

	if a.rateState != nil {
		remaining, reset := a.rateState()
		body["github_rate_remaining"] = remaining

		if !reset.IsZero() {
			body["github_rate_reset"] = reset.Format(time.RFC3339)
		}
	}

	a.respond(resp, http.StatusOK, body)
}

func (a *API) purge(resp http.ResponseWriter, _ *http.Request) {
	purged := a.queue.PurgeTerminal(a.retention)

	a.respond(resp, http.StatusOK, map[string]any{"purged": purged})
}

func (a *API) respond(resp http.ResponseWriter, statusCode int, body map[string]any) {
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(statusCode)

	if err := json.NewEncoder(resp).Encode(body); err != nil {
		a.logger.Error(
			"encoding http response failed",
			logfields.Event("http_response_encoding_failed"),
			zap.Error(err),
		)
	}
}
