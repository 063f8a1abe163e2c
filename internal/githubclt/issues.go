package githubclt

import (
	"context"
	"errors"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/logfields"
)

// AddLabels adds labels to a pull request or issue in one call.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		// github removes all labels when an empty list is posted, fail
		// instead
		return errors.New("no labels provided")
	}

	_, err := do(ctx, clt, func() ([]*github.Label, *github.Response, error) {
		return clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	})

	return err
}

// RemoveLabel removes a label from a pull request or issue.
// If the issue or PR does not have the label, the operation succeeds.
func (clt *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error {
	err := clt.doNoResult(ctx, func() (*github.Response, error) {
		return clt.restClt.Issues.RemoveLabelForIssue(ctx, owner, repo, number, label)
	})
	if err != nil {
		if isNotFound(err) {
			clt.logger.Debug(
				"removing label returned a not found response, interpreting it as success",
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.PullRequest(number),
				zap.String("github_label", label),
				logfields.Event("github_remove_label_returned_not_found"),
				zap.Error(err),
			)

			return nil
		}

		return err
	}

	return nil
}

// ListLabels returns the names of all labels currently set on the pull
// request or issue.
func (clt *Client) ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	var result []string

	opts := &github.ListOptions{PerPage: 100}
	for {
		labels, resp, err := clt.restClt.Issues.ListLabelsByIssue(ctx, owner, repo, number, opts)
		clt.trackRate(resp)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, label := range labels {
			result = append(result, label.GetName())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

// CreateIssueComment creates a comment in an issue or pull request and
// returns the id of the new comment.
func (clt *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (int64, error) {
	comment, err := do(ctx, clt, func() (*github.IssueComment, *github.Response, error) {
		return clt.restClt.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{Body: &body})
	})
	if err != nil {
		return 0, err
	}

	return comment.GetID(), nil
}

// EditIssueComment replaces the body of an existing comment.
func (clt *Client) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, err := do(ctx, clt, func() (*github.IssueComment, *github.Response, error) {
		return clt.restClt.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	})

	return err
}

// DeleteIssueComment deletes a comment.
func (clt *Client) DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) error {
	return clt.doNoResult(ctx, func() (*github.Response, error) {
		return clt.restClt.Issues.DeleteComment(ctx, owner, repo, commentID)
	})
}

// GetReviewComment returns a pull request review comment or nil if it does
// not exist.
func (clt *Client) GetReviewComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, error) {
	comment, err := do(ctx, clt, func() (*github.PullRequestComment, *github.Response, error) {
		return clt.restClt.PullRequests.GetComment(ctx, owner, repo, commentID)
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return comment, nil
}

// CreateIssue opens a new issue and returns its number.
func (clt *Client) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (int, error) {
	req := &github.IssueRequest{
		Title: &title,
		Body:  &body,
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	issue, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.Create(ctx, owner, repo, req)
	})
	if err != nil {
		return 0, err
	}

	return issue.GetNumber(), nil
}

// CloseIssue closes an issue.
func (clt *Client) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	state := "closed"

	_, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{State: &state})
	})

	return err
}

// AddAssignees assigns users to a pull request or issue.
func (clt *Client) AddAssignees(ctx context.Context, owner, repo string, number int, assignees []string) error {
	_, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.AddAssignees(ctx, owner, repo, number, assignees)
	})

	return err
}

// RemoveAssignees unassigns users from a pull request or issue.
func (clt *Client) RemoveAssignees(ctx context.Context, owner, repo string, number int, assignees []string) error {
	_, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.RemoveAssignees(ctx, owner, repo, number, assignees)
	})

	return err
}

// SetMilestone sets the milestone of a pull request or issue.
func (clt *Client) SetMilestone(ctx context.Context, owner, repo string, number, milestoneNumber int) error {
	_, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{Milestone: &milestoneNumber})
	})

	return err
}

// RemoveMilestone clears the milestone of a pull request or issue.
func (clt *Client) RemoveMilestone(ctx context.Context, owner, repo string, number int) error {
	_, err := do(ctx, clt, func() (*github.Issue, *github.Response, error) {
		return clt.restClt.Issues.RemoveMilestone(ctx, owner, repo, number)
	})

	return err
}
