package githubclt

import (
	"context"

	"github.com/google/go-github/v59/github"
)

// RequestReviewers requests reviews from the given users.
func (clt *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error {
	_, err := do(ctx, clt, func() (*github.PullRequest, *github.Response, error) {
		return clt.restClt.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{
			Reviewers: reviewers,
		})
	})

	return err
}

// CreateReview submits a review for the pull request.
// event is one of APPROVE, REQUEST_CHANGES or COMMENT. The id of the new
// review is returned.
func (clt *Client) CreateReview(ctx context.Context, owner, repo string, number int, event, body string) (int64, error) {
	req := &github.PullRequestReviewRequest{Event: &event}
	if body != "" {
		req.Body = &body
	}

	review, err := do(ctx, clt, func() (*github.PullRequestReview, *github.Response, error) {
		return clt.restClt.PullRequests.CreateReview(ctx, owner, repo, number, req)
	})
	if err != nil {
		return 0, err
	}

	return review.GetID(), nil
}

// DismissReview dismisses a previously submitted review.
func (clt *Client) DismissReview(ctx context.Context, owner, repo string, number int, reviewID int64, message string) error {
	_, err := do(ctx, clt, func() (*github.PullRequestReview, *github.Response, error) {
		return clt.restClt.PullRequests.DismissReview(ctx, owner, repo, number, reviewID, &github.PullRequestReviewDismissalRequest{
			Message: &message,
		})
	})

	return err
}
