// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/merganser/merganser/internal/logfields"
	"github.com/merganser/merganser/internal/mergerr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

// maxRateLimitPause limits how long a request pauses before its one in-place
// retry when the API rate limit is exceeded.
const maxRateLimitPause = time.Minute

// lowRateRemainingWarn is the remaining-requests threshold below which every
// response triggers a warning.
const lowRateRemainingWarn = 25

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt:    github.NewClient(httpClient),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is a github API client.
// Get-style methods return a nil result without an error when the queried
// object does not exist.
// Methods return a mergerr.RetryableError when an operation can be retried,
// e.g. when the API ratelimit is exceeded or github responded with a 5xx
// status.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger

	rateLock      sync.Mutex
	rateRemaining int
	rateReset     time.Time
}

// RateLimitState returns the remaining request budget and its reset time as
// reported by the most recent API response.
func (clt *Client) RateLimitState() (remaining int, reset time.Time) {
	clt.rateLock.Lock()
	defer clt.rateLock.Unlock()

	return clt.rateRemaining, clt.rateReset
}

func (clt *Client) trackRate(resp *github.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}

	rate := resp.Rate

	clt.rateLock.Lock()
	clt.rateRemaining = rate.Remaining
	clt.rateReset = rate.Reset.Time
	clt.rateLock.Unlock()

	if rate.Remaining <= lowRateRemainingWarn {
		clt.logger.Warn(
			"api rate limit budget is low",
			logfields.Event("github_api_rate_limit_low"),
			zap.Int("github_api_rate_remaining", rate.Remaining),
			zap.Time("github_api_rate_limit_reset_time", rate.Reset.Time),
		)
	}
}

// do runs call and records the rate limit state of its response.
// When github reports an exceeded rate limit, it pauses until the reported
// reset time, at most maxRateLimitPause, and retries the call once. A rate
// limit error on the retry is returned as mergerr.RetryableError.
func do[T any](ctx context.Context, clt *Client, call func() (T, *github.Response, error)) (T, error) {
	var zero T

	result, resp, err := call()
	clt.trackRate(resp)
	if err == nil {
		return result, nil
	}

	var rateErr *github.RateLimitError
	if !errors.As(err, &rateErr) {
		return zero, clt.wrapRetryableErrors(err)
	}

	pause := time.Until(rateErr.Rate.Reset.Time)
	if pause < 0 {
		pause = 0
	}
	if pause > maxRateLimitPause {
		pause = maxRateLimitPause
	}

	clt.logger.Info(
		"api rate limit exceeded, pausing request",
		logfields.Event("github_api_rate_limit_exceeded"),
		zap.Duration("pause", pause),
		zap.Time("github_api_rate_limit_reset_time", rateErr.Rate.Reset.Time),
	)

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-time.After(pause):
	}

	result, resp, err = call()
	clt.trackRate(resp)
	if err != nil {
		return zero, clt.wrapRetryableErrors(err)
	}

	return result, nil
}

func (clt *Client) doNoResult(ctx context.Context, call func() (*github.Response, error)) error {
	_, err := do(ctx, clt, func() (struct{}, *github.Response, error) {
		resp, err := call()
		return struct{}{}, resp, err
	})

	return err
}

func isNotFound(err error) bool {
	var respErr *github.ErrorResponse
	return errors.As(err, &respErr) &&
		respErr.Response != nil &&
		respErr.Response.StatusCode == http.StatusNotFound
}

// GetPullRequest returns the pull request or nil if it does not exist.
func (clt *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, err := do(ctx, clt, func() (*github.PullRequest, *github.Response, error) {
		return clt.restClt.PullRequests.Get(ctx, owner, repo, number)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return pr, nil
}

// BranchBehindBy returns by how many commits head is behind base.
func (clt *Client) BranchBehindBy(ctx context.Context, owner, repo, base, head string) (int, error) {
	cmp, err := do(ctx, clt, func() (*github.CommitsComparison, *github.Response, error) {
		return clt.restClt.Repositories.CompareCommits(ctx, owner, repo, base, head, &github.ListOptions{PerPage: 1})
	})
	if err != nil {
		return 0, err
	}

	if cmp.BehindBy == nil {
		return 0, mergerr.NewRetryableAnytimeError(errors.New("github returned a nil BehindBy field"))
	}

	return *cmp.BehindBy, nil
}

// UpdateBranchResult describes the outcome of an update branch call.
// Scheduled is true when github accepted the update but runs it
// asynchronously.
type UpdateBranchResult struct {
	Scheduled bool
	Message   string
}

// UpdateBranch merges the base branch into the pull request branch.
// Callers are expected to have checked that the branch is behind its base,
// updating an up-to-date branch creates an empty merge commit.
// If the branch changed between the check and this call, a
// mergerr.RetryableError is returned and the operation can be repeated.
// A merge conflict is a permanent error.
func (clt *Client) UpdateBranch(ctx context.Context, owner, repo string, number int, expectedHeadSHA string) (*UpdateBranchResult, error) {
	opts := &github.PullRequestBranchUpdateOptions{}
	if expectedHeadSHA != "" {
		opts.ExpectedHeadSHA = &expectedHeadSHA
	}

	result, err := do(ctx, clt, func() (*github.PullRequestBranchUpdateResponse, *github.Response, error) {
		return clt.restClt.PullRequests.UpdateBranch(ctx, owner, repo, number, opts)
	})
	if err != nil {
		var acceptedErr *github.AcceptedError
		if errors.As(err, &acceptedErr) {
			// github runs the update asynchronously and responds
			// with 202 before it finished
			clt.logger.Debug(
				"updating branch with base branch scheduled",
				logfields.Event("github_branch_update_scheduled"),
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.PullRequest(number),
			)

			return &UpdateBranchResult{Scheduled: true}, nil
		}

		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response != nil &&
			respErr.Response.StatusCode == http.StatusUnprocessableEntity {
			if strings.Contains(respErr.Message, "merge conflict") {
				return nil, fmt.Errorf("merge conflict: %w", respErr)
			}

			if strings.Contains(respErr.Message, "expected head sha didn’t match current head ref") {
				return nil, mergerr.NewRetryableAnytimeError(err)
			}
		}

		return nil, err
	}

	return &UpdateBranchResult{Message: result.GetMessage()}, nil
}

// MergeResult describes a performed merge.
type MergeResult struct {
	Merged  bool
	SHA     string
	Message string
}

// MergePullRequest merges the pull request with the given method
// (merge, squash or rebase).
func (clt *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, method, commitMessage string) (*MergeResult, error) {
	opts := &github.PullRequestOptions{MergeMethod: method}

	result, err := do(ctx, clt, func() (*github.PullRequestMergeResult, *github.Response, error) {
		return clt.restClt.PullRequests.Merge(ctx, owner, repo, number, commitMessage, opts)
	})
	if err != nil {
		return nil, err
	}

	return &MergeResult{
		Merged:  result.GetMerged(),
		SHA:     result.GetSHA(),
		Message: result.GetMessage(),
	}, nil
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return mergerr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.ErrorResponse:
		if v.Response != nil && v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return mergerr.NewRetryableAnytimeError(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	if err == nil {
		return nil
	}

	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return mergerr.NewRetryableAnytimeError(err)
	}

	return err
}
