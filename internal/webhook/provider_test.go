package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/merganser/merganser/internal/actionqueue"
)

const testSecret = "s3cret"

type fakeEnqueuer struct {
	requests []*actionqueue.EnqueueRequest
}

func (f *fakeEnqueuer) Enqueue(req *actionqueue.EnqueueRequest) (string, bool, error) {
	f.requests = append(f.requests, req)
	return "test-action-id", false, nil
}

func newTestProvider(t *testing.T, opts ...option) (*Provider, *fakeEnqueuer) {
	t.Helper()
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	enqueuer := &fakeEnqueuer{}

	return New(enqueuer, opts...), enqueuer
}

func signBody(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))

	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newDelivery(eventType, body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/github", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-GitHub-Delivery", "3355fab0-b22c-11eb-9936-51d9540c0cdc")

	if signature != "" {
		req.Header.Set("X-Hub-Signature-256", signature)
	}

	return req
}

const pullRequestOpenedPayload = `{
	"action": "opened",
	"repository": {"name": "widgets", "owner": {"login": "acme"}},
	"pull_request": {"number": 42, "mergeable_state": "clean"},
	"sender": {"login": "alice"}
}`

func pullRequestPayload(action, labelName, mergeableState string) string {
	return `{
		"action": "` + action + `",
		"label": {"name": "` + labelName + `"},
		"repository": {"name": "widgets", "owner": {"login": "acme"}},
		"pull_request": {"number": 42, "mergeable_state": "` + mergeableState + `"},
		"sender": {"login": "alice"}
	}`
}

func issueCommentPayload(body string, isPR bool) string {
	issue := `{"number": 42}`
	if isPR {
		issue = `{"number": 42, "pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/42"}}`
	}

	return `{
		"action": "created",
		"issue": ` + issue + `,
		"comment": {"id": 900, "body": "` + body + `", "user": {"login": "alice"}},
		"repository": {"name": "widgets", "owner": {"login": "acme"}}
	}`
}

func TestSignatureOverDifferentBodyIsRejected(t *testing.T) {
	provider, enqueuer := newTestProvider(t, WithPayloadSecret(testSecret))

	signature := signBody(testSecret, `{"action": "something-else"}`)
	resp := httptest.NewRecorder()

	provider.Handler(resp, newDelivery("pull_request", pullRequestOpenedPayload, signature))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestMissingSignatureIsRejectedWhenSecretIsConfigured(t *testing.T) {
	provider, enqueuer := newTestProvider(t, WithPayloadSecret(testSecret))

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestOpenedPayload, ""))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestValidSignatureIsAccepted(t *testing.T) {
	provider, enqueuer := newTestProvider(t, WithPayloadSecret(testSecret))

	signature := signBody(testSecret, pullRequestOpenedPayload)
	resp := httptest.NewRecorder()

	provider.Handler(resp, newDelivery("pull_request", pullRequestOpenedPayload, signature))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status": "received"}`, resp.Body.String())
	require.Len(t, enqueuer.requests, 1)
}

func TestOpenedPullRequestEnqueuesLabelSync(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestOpenedPayload, ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)

	req := enqueuer.requests[0]
	assert.Equal(t, actionqueue.KindSyncLabels, req.Kind)
	assert.Equal(t, actionqueue.PriorityBackground, req.Priority)
	assert.Equal(t, "acme", req.Owner)
	assert.Equal(t, "widgets", req.Repo)
	assert.Equal(t, 42, req.Number)
}

func TestSynchronizeBehindBaseEnqueuesBranchUpdate(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestPayload("synchronize", "", "behind"), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)

	req := enqueuer.requests[0]
	assert.Equal(t, actionqueue.KindUpdateBranch, req.Kind)
	assert.Equal(t, actionqueue.PriorityHigh, req.Priority)
	assert.Equal(t, map[string]any{"method": "merge"}, req.Params)
}

func TestSynchronizeUpToDateEnqueuesNothing(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestPayload("synchronize", "", "clean"), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestAllowListedLabelEnqueuesMergeQueueAdd(t *testing.T) {
	provider, enqueuer := newTestProvider(t,
		WithMergeQueueTriggerLabels([]string{"claude-auto", "auto-merge"}),
	)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestPayload("labeled", "claude-auto", "clean"), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)

	req := enqueuer.requests[0]
	assert.Equal(t, actionqueue.KindAddToMergeQueue, req.Kind)
	assert.Equal(t, actionqueue.PriorityHigh, req.Priority)
}

func TestUnlistedLabelEnqueuesNothing(t *testing.T) {
	provider, enqueuer := newTestProvider(t,
		WithMergeQueueTriggerLabels([]string{"claude-auto", "auto-merge"}),
	)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestPayload("labeled", "random-label", "clean"), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestReadyForReviewEnqueuesLabelSync(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", pullRequestPayload("ready_for_review", "", "clean"), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)
	assert.Equal(t, actionqueue.KindSyncLabels, enqueuer.requests[0].Kind)
	assert.Equal(t, actionqueue.PriorityNormal, enqueuer.requests[0].Priority)
}

func TestCommentCommandOnPullRequest(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("issue_comment", issueCommentPayload("/update-branch please", true), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)

	req := enqueuer.requests[0]
	assert.Equal(t, actionqueue.KindUpdateBranch, req.Kind)
	assert.Equal(t, actionqueue.PriorityHigh, req.Priority)
	assert.Equal(t, 42, req.Number)
	assert.Equal(t, "comment-command by alice", req.TriggeredBy)
}

func TestRerunChecksCommentCommand(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("issue_comment", issueCommentPayload("/rerun-checks", true), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)
	assert.Equal(t, actionqueue.KindRerunChecks, enqueuer.requests[0].Kind)
	assert.Equal(t, actionqueue.PriorityNormal, enqueuer.requests[0].Priority)
}

func TestCommentCommandOnPlainIssueIsIgnored(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("issue_comment", issueCommentPayload("/update-branch", false), ""))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestResolveCommandOnReviewComment(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	payload := `{
		"action": "created",
		"pull_request": {"number": 42},
		"comment": {"id": 900, "body": "please /resolve this", "user": {"login": "alice"}},
		"repository": {"name": "widgets", "owner": {"login": "acme"}}
	}`

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request_review_comment", payload, ""))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, enqueuer.requests, 1)

	req := enqueuer.requests[0]
	assert.Equal(t, actionqueue.KindResolveComment, req.Kind)
	assert.Equal(t, map[string]any{"comment_id": int64(900)}, req.Params)
}

func TestFailedCheckSuiteIsOnlyLogged(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	payload := `{
		"action": "completed",
		"check_suite": {"status": "completed", "conclusion": "failure"},
		"repository": {"name": "widgets", "owner": {"login": "acme"}}
	}`

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("check_suite", payload, ""))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestUnsupportedEventTypeIsAcknowledged(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("star", `{"action": "created"}`, ""))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, enqueuer.requests)
}

func TestUnknownEventTypeIsAcknowledged(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("some_future_event", `{"action": "created"}`, ""))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status": "received"}`, resp.Body.String())
	assert.Empty(t, enqueuer.requests)
}

func TestMalformedPayloadIsRejected(t *testing.T) {
	provider, enqueuer := newTestProvider(t)

	resp := httptest.NewRecorder()
	provider.Handler(resp, newDelivery("pull_request", `{"action":`, ""))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, enqueuer.requests)
}
