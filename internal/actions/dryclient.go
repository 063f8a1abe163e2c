package actions

import (
	"context"

	"github.com/google/go-github/v59/github"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/githubclt"
	"github.com/merganser/merganser/internal/logfields"
)

// DryClient is a github client that does not change anything on github.
// Every mutating operation is simulated, logged and succeeds, read
// operations are forwarded to the wrapped client.
type DryClient struct {
	clt    GithubClient
	logger *zap.Logger
}

func NewDryClient(clt GithubClient) *DryClient {
	return &DryClient{
		clt:    clt,
		logger: zap.L().Named("dry_github_client"),
	}
}

func (c *DryClient) simulated(operation string) {
	c.logger.Info("simulated github operation", logfields.Operation(operation))
}

func (c *DryClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	return c.clt.GetPullRequest(ctx, owner, repo, number)
}

func (c *DryClient) BranchBehindBy(ctx context.Context, owner, repo, base, head string) (int, error) {
	return c.clt.BranchBehindBy(ctx, owner, repo, base, head)
}

func (c *DryClient) UpdateBranch(context.Context, string, string, int, string) (*githubclt.UpdateBranchResult, error) {
	c.simulated("update_branch")
	return &githubclt.UpdateBranchResult{Message: "simulated branch update"}, nil
}

func (c *DryClient) MergePullRequest(context.Context, string, string, int, string, string) (*githubclt.MergeResult, error) {
	c.simulated("merge_pull_request")
	return &githubclt.MergeResult{Merged: true, Message: "simulated merge"}, nil
}

func (c *DryClient) PRCIStatus(ctx context.Context, owner, repo string, number int) (*githubclt.PRCIStatus, error) {
	return c.clt.PRCIStatus(ctx, owner, repo, number)
}

func (c *DryClient) ListCheckRuns(ctx context.Context, owner, repo, ref string) ([]*github.CheckRun, error) {
	return c.clt.ListCheckRuns(ctx, owner, repo, ref)
}

func (c *DryClient) RerunCheckRun(context.Context, string, string, int64) error {
	c.simulated("rerun_check_run")
	return nil
}

func (c *DryClient) RequiredStatusChecks(ctx context.Context, owner, repo, branch string) ([]string, error) {
	return c.clt.RequiredStatusChecks(ctx, owner, repo, branch)
}

func (c *DryClient) CreateCommitStatus(context.Context, string, string, string, string, string, string) error {
	c.simulated("create_commit_status")
	return nil
}

func (c *DryClient) AddLabels(context.Context, string, string, int, []string) error {
	c.simulated("add_labels")
	return nil
}

func (c *DryClient) RemoveLabel(context.Context, string, string, int, string) error {
	c.simulated("remove_label")
	return nil
}

func (c *DryClient) ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error) {
	return c.clt.ListLabels(ctx, owner, repo, number)
}

func (c *DryClient) CreateIssueComment(context.Context, string, string, int, string) (int64, error) {
	c.simulated("create_issue_comment")
	return 0, nil
}

func (c *DryClient) EditIssueComment(context.Context, string, string, int64, string) error {
	c.simulated("edit_issue_comment")
	return nil
}

func (c *DryClient) DeleteIssueComment(context.Context, string, string, int64) error {
	c.simulated("delete_issue_comment")
	return nil
}

func (c *DryClient) GetReviewComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, error) {
	return c.clt.GetReviewComment(ctx, owner, repo, commentID)
}

func (c *DryClient) RequestReviewers(context.Context, string, string, int, []string) error {
	c.simulated("request_reviewers")
	return nil
}

func (c *DryClient) CreateReview(context.Context, string, string, int, string, string) (int64, error) {
	c.simulated("create_review")
	return 0, nil
}

func (c *DryClient) DismissReview(context.Context, string, string, int, int64, string) error {
	c.simulated("dismiss_review")
	return nil
}

func (c *DryClient) EnableAutoMerge(context.Context, string, string) error {
	c.simulated("enable_auto_merge")
	return nil
}

func (c *DryClient) DisableAutoMerge(context.Context, string) error {
	c.simulated("disable_auto_merge")
	return nil
}

func (c *DryClient) CreateIssue(context.Context, string, string, string, string, []string) (int, error) {
	c.simulated("create_issue")
	return 0, nil
}

func (c *DryClient) CloseIssue(context.Context, string, string, int) error {
	c.simulated("close_issue")
	return nil
}

func (c *DryClient) AddAssignees(context.Context, string, string, int, []string) error {
	c.simulated("add_assignees")
	return nil
}

func (c *DryClient) RemoveAssignees(context.Context, string, string, int, []string) error {
	c.simulated("remove_assignees")
	return nil
}

func (c *DryClient) SetMilestone(context.Context, string, string, int, int) error {
	c.simulated("set_milestone")
	return nil
}

func (c *DryClient) RemoveMilestone(context.Context, string, string, int) error {
	c.simulated("remove_milestone")
	return nil
}
