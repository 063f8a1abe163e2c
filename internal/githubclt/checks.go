package githubclt

import (
	"context"

	"github.com/google/go-github/v59/github"
)

// ListCheckRuns returns all check runs reported for the given git ref.
func (clt *Client) ListCheckRuns(ctx context.Context, owner, repo, ref string) ([]*github.CheckRun, error) {
	var result []*github.CheckRun

	opts := &github.ListCheckRunsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		runs, resp, err := clt.restClt.Checks.ListCheckRunsForRef(ctx, owner, repo, ref, opts)
		clt.trackRate(resp)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		result = append(result, runs.CheckRuns...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// RerunCheckRun asks github to execute a check run again.
func (clt *Client) RerunCheckRun(ctx context.Context, owner, repo string, checkRunID int64) error {
	return clt.doNoResult(ctx, func() (*github.Response, error) {
		return clt.restClt.Checks.ReRequestCheckRun(ctx, owner, repo, checkRunID)
	})
}

// RequiredStatusChecks returns the names of the status checks that must
// succeed before pull requests into branch can be merged.
// An unprotected branch has no required checks, nil is returned.
func (clt *Client) RequiredStatusChecks(ctx context.Context, owner, repo, branch string) ([]string, error) {
	checks, err := do(ctx, clt, func() (*github.RequiredStatusChecks, *github.Response, error) {
		return clt.restClt.Repositories.GetRequiredStatusChecks(ctx, owner, repo, branch)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return checks.Contexts, nil
}

// CreateCommitStatus reports a commit status for the given sha.
// state is one of error, failure, pending or success.
func (clt *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha, statusContext, state, description string) error {
	status := &github.RepoStatus{
		State:   &state,
		Context: &statusContext,
	}
	if description != "" {
		status.Description = &description
	}

	_, err := do(ctx, clt, func() (*github.RepoStatus, *github.Response, error) {
		return clt.restClt.Repositories.CreateStatus(ctx, owner, repo, sha, status)
	})

	return err
}
