package githubclt

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// mergeMethodFromString maps the wire representation of a merge method to
// its GraphQL enum value.
func mergeMethodFromString(method string) (githubv4.PullRequestMergeMethod, error) {
	switch method {
	case "", "merge":
		return githubv4.PullRequestMergeMethodMerge, nil
	case "squash":
		return githubv4.PullRequestMergeMethodSquash, nil
	case "rebase":
		return githubv4.PullRequestMergeMethodRebase, nil
	default:
		return "", fmt.Errorf("unknown merge method: %q", method)
	}
}

// EnableAutoMerge enables auto-merge for the pull request, entering it into
// the repository merge queue.
// Auto-merge has no REST endpoint, prNodeID is the GraphQL node id of the
// pull request.
func (clt *Client) EnableAutoMerge(ctx context.Context, prNodeID, mergeMethod string) error {
	method, err := mergeMethodFromString(mergeMethod)
	if err != nil {
		return err
	}

	var m struct {
		EnablePullRequestAutoMerge struct {
			PullRequest struct {
				Number githubv4.Int
			}
		} `graphql:"enablePullRequestAutoMerge(input: $input)"`
	}

	input := githubv4.EnablePullRequestAutoMergeInput{
		PullRequestID: githubv4.ID(prNodeID),
		MergeMethod:   &method,
	}

	return clt.wrapGraphQLRetryableErrors(clt.graphQLClt.Mutate(ctx, &m, input, nil))
}

// DisableAutoMerge removes the pull request from the merge queue again.
func (clt *Client) DisableAutoMerge(ctx context.Context, prNodeID string) error {
	var m struct {
		DisablePullRequestAutoMerge struct {
			PullRequest struct {
				Number githubv4.Int
			}
		} `graphql:"disablePullRequestAutoMerge(input: $input)"`
	}

	input := githubv4.DisablePullRequestAutoMergeInput{
		PullRequestID: githubv4.ID(prNodeID),
	}

	return clt.wrapGraphQLRetryableErrors(clt.graphQLClt.Mutate(ctx, &m, input, nil))
}
