package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/merganser/merganser/internal/mergerr"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	restClt := github.NewClient(srv.Client())
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	restClt.BaseURL = baseURL

	return &Client{
		restClt:    restClt,
		graphQLClt: githubv4.NewEnterpriseClient(srv.URL, srv.Client()),
		logger:     zap.L(),
	}, srv
}

func TestGetPullRequestNotFoundReturnsNil(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))

	pr, err := clt.GetPullRequest(context.Background(), "acme", "widgets", 9000)
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestServerErrorIsRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"message": "service unavailable"}`)
	}))

	_, err := clt.GetPullRequest(context.Background(), "acme", "widgets", 1)
	require.Error(t, err)

	var retryableErr *mergerr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestRemoveLabelNotFoundIsSuccess(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Label does not exist"}`)
	}))

	err := clt.RemoveLabel(context.Background(), "acme", "widgets", 1, "needs-rebase")
	assert.NoError(t, err)
}

func TestRateLimitedRequestIsRetriedOnce(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	var requests atomic.Int32
	// reset lies in the past so neither the client-side limit check nor
	// the pause delays the test
	reset := time.Now().Add(-2 * time.Second).Unix()

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(reset))

		if requests.Add(1) == 1 {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", "4999")
		fmt.Fprint(w, `{"number": 1, "state": "open"}`)
	}))

	pr, err := clt.GetPullRequest(context.Background(), "acme", "widgets", 1)
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, 1, pr.GetNumber())
	assert.EqualValues(t, 2, requests.Load())

	remaining, _ := clt.RateLimitState()
	assert.Equal(t, 4999, remaining)
}

func TestSecondRateLimitErrorIsRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	var requests atomic.Int32
	reset := time.Now().Add(-2 * time.Second).Unix()

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(reset))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	}))

	_, err := clt.GetPullRequest(context.Background(), "acme", "widgets", 1)
	require.Error(t, err)
	assert.EqualValues(t, 2, requests.Load())

	var retryableErr *mergerr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestGraphQLServerErrorIsRetryable(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := clt.EnableAutoMerge(context.Background(), "PR_node123", "squash")
	require.Error(t, err)

	var retryableErr *mergerr.RetryableError
	assert.ErrorAs(t, err, &retryableErr)
}

func TestWrapGraphQLRetryableErrorsWithNonStatusErr(t *testing.T) {
	err := errors.New("error")
	wrappedErr := (&Client{logger: zap.NewNop()}).wrapGraphQLRetryableErrors(err)
	assert.Equal(t, err, wrappedErr)
}

func TestUpdateBranchReportsScheduled(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	clt, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		fmt.Fprint(w, `{"message": "Updating pull request branch."}`)
	}))

	result, err := clt.UpdateBranch(context.Background(), "acme", "widgets", 1, "headsha123")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Scheduled)
}

func TestMergeMethodFromString(t *testing.T) {
	method, err := mergeMethodFromString("")
	require.NoError(t, err)
	assert.Equal(t, githubv4.PullRequestMergeMethodMerge, method)

	method, err = mergeMethodFromString("rebase")
	require.NoError(t, err)
	assert.Equal(t, githubv4.PullRequestMergeMethodRebase, method)

	_, err = mergeMethodFromString("fast-forward")
	require.Error(t, err)
}
