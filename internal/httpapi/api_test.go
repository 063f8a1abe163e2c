package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/merganser/merganser/internal/actionqueue"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(context.Context, *actionqueue.Action) (map[string]any, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, opts ...option) (*chi.Mux, *actionqueue.Queue) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	queue := actionqueue.New(3, 100)
	pool := actionqueue.NewPool(queue, noopDispatcher{}, 3, time.Millisecond)
	api := New(queue, pool, opts...)

	return api.Router("/webhooks/github", func(resp http.ResponseWriter, _ *http.Request) {
		resp.WriteHeader(http.StatusOK)
	}), queue
}

func enqueue(t *testing.T, queue *actionqueue.Queue, kind actionqueue.Kind, number int) string {
	t.Helper()

	id, _, err := queue.Enqueue(&actionqueue.EnqueueRequest{
		Kind:   kind,
		Owner:  "acme",
		Repo:   "widgets",
		Number: number,
	})
	require.NoError(t, err)

	return id
}

func doRequest(t *testing.T, router *chi.Mux, method, path string) (int, map[string]any) {
	t.Helper()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(method, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	return resp.Code, body
}

func TestQueueStats(t *testing.T) {
	router, queue := newTestRouter(t)

	enqueue(t, queue, actionqueue.KindSyncLabels, 1)
	enqueue(t, queue, actionqueue.KindMergePR, 2)

	statusCode, body := doRequest(t, router, http.MethodGet, "/queue/stats")

	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, float64(2), body["queued"])
	assert.Equal(t, float64(0), body["processing"])
	assert.Equal(t, float64(3), body["workers"])
	assert.Equal(t, false, body["running"])
}

func TestPRActionsListsOnlyTheRequestedPR(t *testing.T) {
	router, queue := newTestRouter(t)

	enqueue(t, queue, actionqueue.KindSyncLabels, 42)
	enqueue(t, queue, actionqueue.KindMergePR, 42)
	enqueue(t, queue, actionqueue.KindSyncLabels, 7)

	statusCode, body := doRequest(t, router, http.MethodGet, "/queue/pr/acme/widgets/42")

	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "acme/widgets#42", body["pr"])

	actions, ok := body["actions"].([]any)
	require.True(t, ok)
	assert.Len(t, actions, 2)
}

func TestPRActionsInvalidNumber(t *testing.T) {
	router, _ := newTestRouter(t)

	statusCode, _ := doRequest(t, router, http.MethodGet, "/queue/pr/acme/widgets/latest")

	assert.Equal(t, http.StatusBadRequest, statusCode)
}

func TestActionByID(t *testing.T) {
	router, queue := newTestRouter(t)

	id := enqueue(t, queue, actionqueue.KindSyncLabels, 42)

	statusCode, body := doRequest(t, router, http.MethodGet, "/queue/action/"+id)

	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, id, body["id"])
	assert.Equal(t, "sync-labels", body["kind"])
	assert.Equal(t, "queued", body["status"])
}

func TestUnknownActionReturns404(t *testing.T) {
	router, _ := newTestRouter(t)

	statusCode, body := doRequest(t, router, http.MethodGet, "/queue/action/no-such-id")

	assert.Equal(t, http.StatusNotFound, statusCode)
	assert.Equal(t, "Action not found", body["error"])
}

func TestCancelAction(t *testing.T) {
	router, queue := newTestRouter(t)

	id := enqueue(t, queue, actionqueue.KindSyncLabels, 42)

	statusCode, body := doRequest(t, router, http.MethodPost, "/queue/action/"+id+"/cancel")
	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, true, body["cancelled"])

	// terminal now, a second cancel must report false
	_, body = doRequest(t, router, http.MethodPost, "/queue/action/"+id+"/cancel")
	assert.Equal(t, false, body["cancelled"])
}

func TestHealthIncludesRateState(t *testing.T) {
	reset := time.Now().Add(30 * time.Minute).Truncate(time.Second)

	router, _ := newTestRouter(t, WithRateLimitState(func() (int, time.Time) {
		return 4711, reset
	}))

	statusCode, body := doRequest(t, router, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["queue_running"])
	assert.Equal(t, float64(4711), body["github_rate_remaining"])
	assert.Equal(t, reset.Format(time.RFC3339), body["github_rate_reset"])
}

func TestPurgeRemovesTerminalActions(t *testing.T) {
	router, queue := newTestRouter(t, WithPurgeRetention(0))

	enqueue(t, queue, actionqueue.KindSyncLabels, 42)
	act := queue.DequeueNext()
	require.NotNil(t, act)
	require.NoError(t, queue.Complete(act.ID, nil))

	statusCode, body := doRequest(t, router, http.MethodPost, "/queue/purge")

	assert.Equal(t, http.StatusOK, statusCode)
	assert.Equal(t, float64(1), body["purged"])
	assert.Equal(t, 0, queue.Stats().Completed)
}

func TestWebhookHandlerIsMounted(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/webhooks/github", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
}
