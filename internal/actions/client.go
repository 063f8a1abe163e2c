package actions

import (
	"context"

	"github.com/google/go-github/v59/github"

	"github.com/merganser/merganser/internal/githubclt"
)

// GithubClient is the surface of the github API that the handlers use.
// It is implemented by githubclt.Client.
// Get-style methods return a nil result without an error when the queried
// object does not exist.
type GithubClient interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	BranchBehindBy(ctx context.Context, owner, repo, base, head string) (int, error)
	UpdateBranch(ctx context.Context, owner, repo string, number int, expectedHeadSHA string) (*githubclt.UpdateBranchResult, error)
	MergePullRequest(ctx context.Context, owner, repo string, number int, method, commitMessage string) (*githubclt.MergeResult, error)

	PRCIStatus(ctx context.Context, owner, repo string, number int) (*githubclt.PRCIStatus, error)
	ListCheckRuns(ctx context.Context, owner, repo, ref string) ([]*github.CheckRun, error)
	RerunCheckRun(ctx context.Context, owner, repo string, checkRunID int64) error
	RequiredStatusChecks(ctx context.Context, owner, repo, branch string) ([]string, error)
	CreateCommitStatus(ctx context.Context, owner, repo, sha, statusContext, state, description string) error

	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	RemoveLabel(ctx context.Context, owner, repo string, number int, label string) error
	ListLabels(ctx context.Context, owner, repo string, number int) ([]string, error)

	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (int64, error)
	EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error
	DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) error
	GetReviewComment(ctx context.Context, owner, repo string, commentID int64) (*github.PullRequestComment, error)

	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error
	CreateReview(ctx context.Context, owner, repo string, number int, event, body string) (int64, error)
	DismissReview(ctx context.Context, owner, repo string, number int, reviewID int64, message string) error

	EnableAutoMerge(ctx context.Context, prNodeID, mergeMethod string) error
	DisableAutoMerge(ctx context.Context, prNodeID string) error

	CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (int, error)
	CloseIssue(ctx context.Context, owner, repo string, number int) error

	AddAssignees(ctx context.Context, owner, repo string, number int, assignees []string) error
	RemoveAssignees(ctx context.Context, owner, repo string, number int, assignees []string) error

	SetMilestone(ctx context.Context, owner, repo string, number, milestoneNumber int) error
	RemoveMilestone(ctx context.Context, owner, repo string, number int) error
}
