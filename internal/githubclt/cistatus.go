package githubclt

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"

	"github.com/merganser/merganser/internal/logfields"
)

// CIStatus folds the different result values of GitHub check runs and commit
// statuses into a single value.
type CIStatus string

const (
	CIStatusSuccess CIStatus = "SUCCESS"
	CIStatusPending CIStatus = "PENDING"
	CIStatusFailure CIStatus = "FAILURE"
)

// CheckStatus is the folded state of one check run or commit status.
type CheckStatus struct {
	Name     string
	Status   CIStatus
	Required bool
}

// PRCIStatus is the CI state of the head commit of a pull request.
// Required contexts that no check run or commit status reported for yet are
// included with status pending.
type PRCIStatus struct {
	Overall CIStatus
	Checks  []*CheckStatus
	HeadSHA string
}

// FailedRequiredChecks returns the names of required checks in failure state.
func (s *PRCIStatus) FailedRequiredChecks() []string {
	var result []string

	for _, check := range s.Checks {
		if check.Required && check.Status == CIStatusFailure {
			result = append(result, check.Name)
		}
	}

	return result
}

// PendingRequiredChecks returns the names of required checks that did not
// report a result yet or are still running.
func (s *PRCIStatus) PendingRequiredChecks() []string {
	var result []string

	for _, check := range s.Checks {
		if check.Required && check.Status == CIStatusPending {
			result = append(result, check.Name)
		}
	}

	return result
}

// PRCIStatus queries the [status check rollup] of the newest commit of a pull
// request together with the required status check contexts of its base
// branch. The rollup contains check runs and commit statuses.
//
// The overall status is failure if a required check failed, pending if any
// check did not finish, success otherwise. Failures of optional checks do not
// influence the overall status.
//
// [status check rollup]: https://docs.github.com/en/graphql/reference/objects#statuscheckrollup
func (clt *Client) PRCIStatus(ctx context.Context, owner, repo string, prNumber int) (*PRCIStatus, error) {
	raw, err := clt.queryCheckRollup(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, clt.wrapGraphQLRetryableErrors(err)
	}

	checks, err := foldCheckStatuses(raw)
	if err != nil {
		return nil, err
	}

	return &PRCIStatus{
		Overall: overallCIStatus(raw.rollupState, checks),
		Checks:  checks,
		HeadSHA: raw.headSHA,
	}, nil
}

func overallCIStatus(rollupState githubv4.StatusState, checks []*CheckStatus) CIStatus {
	if rollupState == githubv4.StatusStatePending {
		return CIStatusPending
	}

	result := CIStatusSuccess
	for _, check := range checks {
		if check.Status == CIStatusPending {
			result = CIStatusPending
			continue
		}

		if check.Required && check.Status == CIStatusFailure {
			return CIStatusFailure
		}
	}

	return result
}

// foldCheckStatuses merges check runs, commit statuses and the required
// context list into one CheckStatus per context name.
// Required contexts without a reported result are pending.
func foldCheckStatuses(raw *checkRollup) ([]*CheckStatus, error) {
	byName := make(map[string]*CheckStatus, len(raw.requiredContexts)+len(raw.checkRuns)+len(raw.commitStatuses))

	for _, name := range raw.requiredContexts {
		if _, exist := byName[name]; exist {
			return nil, fmt.Errorf("branch protection lists the required context %q twice", name)
		}

		byName[name] = &CheckStatus{
			Name:     name,
			Status:   CIStatusPending,
			Required: true,
		}
	}

	for _, run := range raw.checkRuns {
		status, err := checkRunCIStatus(run.Status, run.Conclusion)
		if err != nil {
			return nil, fmt.Errorf("check run %q: %w", run.Name, err)
		}

		if entry, exist := byName[run.Name]; exist {
			entry.Status = status
			continue
		}

		byName[run.Name] = &CheckStatus{Name: run.Name, Status: status}
	}

	for _, commitStatus := range raw.commitStatuses {
		status, err := commitStatusCIStatus(commitStatus.State)
		if err != nil {
			return nil, fmt.Errorf("commit status %q: %w", commitStatus.Context, err)
		}

		if entry, exist := byName[commitStatus.Context]; exist {
			entry.Status = status
			continue
		}

		byName[commitStatus.Context] = &CheckStatus{Name: commitStatus.Context, Status: status}
	}

	result := make([]*CheckStatus, 0, len(byName))
	for _, check := range byName {
		result = append(result, check)
	}

	return result, nil
}

func checkRunCIStatus(status githubv4.CheckStatusState, conclusion githubv4.CheckConclusionState) (CIStatus, error) {
	switch status {
	case githubv4.CheckStatusStateInProgress,
		githubv4.CheckStatusStatePending,
		githubv4.CheckStatusStateQueued,
		githubv4.CheckStatusStateRequested,
		githubv4.CheckStatusStateWaiting:
		return CIStatusPending, nil

	case githubv4.CheckStatusStateCompleted:
		return checkConclusionCIStatus(conclusion)

	default:
		return "", fmt.Errorf("unsupported check run status value: %q", status)
	}
}

func checkConclusionCIStatus(conclusion githubv4.CheckConclusionState) (CIStatus, error) {
	switch conclusion {
	case githubv4.CheckConclusionStateCancelled,
		githubv4.CheckConclusionStateFailure,
		githubv4.CheckConclusionStateStale,
		githubv4.CheckConclusionStateStartupFailure,
		githubv4.CheckConclusionStateTimedOut:
		return CIStatusFailure, nil

	case githubv4.CheckConclusionStateActionRequired:
		return CIStatusPending, nil

	case githubv4.CheckConclusionStateNeutral,
		githubv4.CheckConclusionStateSkipped,
		githubv4.CheckConclusionStateSuccess:
		return CIStatusSuccess, nil

	default:
		return "", fmt.Errorf("unsupported check run conclusion value: %q", conclusion)
	}
}

func commitStatusCIStatus(state githubv4.StatusState) (CIStatus, error) {
	switch state {
	case githubv4.StatusStateError,
		githubv4.StatusStateFailure:
		return CIStatusFailure, nil

	case githubv4.StatusStateExpected,
		githubv4.StatusStatePending:
		return CIStatusPending, nil

	case githubv4.StatusStateSuccess:
		return CIStatusSuccess, nil

	default:
		return "", fmt.Errorf("unsupported commit status state value: %q", state)
	}
}

type rollupCheckRun struct {
	Name       string
	Conclusion githubv4.CheckConclusionState
	Status     githubv4.CheckStatusState
}

type rollupCommitStatus struct {
	State   githubv4.StatusState
	Context string
}

type checkRollup struct {
	rollupState      githubv4.StatusState
	requiredContexts []string
	checkRuns        []*rollupCheckRun
	commitStatuses   []*rollupCommitStatus
	headSHA          string
}

// queryCheckRollup pages through the rollup contexts of the newest commit.
// If the pull request head moves between pages, accumulated results are
// discarded and the query starts over for the new commit.
func (clt *Client) queryCheckRollup(ctx context.Context, owner, repo string, prNumber int) (*checkRollup, error) {
	type rollupQuery struct {
		Repository struct {
			PullRequest struct {
				BaseRef struct {
					BranchProtectionRule struct {
						RequiredStatusCheckContexts []string
					}
				}

				Commits struct {
					Nodes []struct {
						Commit struct {
							Oid               string
							StatusCheckRollup struct {
								State    githubv4.StatusState
								Contexts struct {
									PageInfo struct {
										EndCursor   string
										HasNextPage bool
									}
									Edges []struct {
										Node struct {
											CheckRun      rollupCheckRun     `graphql:"... on CheckRun"`
											StatusContext rollupCommitStatus `graphql:"... on StatusContext"`
										}
									}
								} `graphql:"contexts(first: $contextsFirst, after: $contextsAfter)"`
							}
						}
					}
				} `graphql:"commits(last: 1)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	vars := map[string]any{
		"owner":         githubv4.String(owner),
		"name":          githubv4.String(repo),
		"number":        githubv4.Int(prNumber),
		"contextsFirst": githubv4.Int(100),
		"contextsAfter": (*githubv4.String)(nil),
	}

	var result checkRollup

	for {
		var q rollupQuery

		if err := clt.graphQLClt.Query(ctx, &q, vars); err != nil {
			return nil, err
		}

		if len(q.Repository.PullRequest.Commits.Nodes) == 0 {
			return nil, fmt.Errorf("pull request %s/%s#%d has no commits", owner, repo, prNumber)
		}

		commit := q.Repository.PullRequest.Commits.Nodes[0].Commit

		if result.headSHA == "" {
			result.headSHA = commit.Oid
		} else if result.headSHA != commit.Oid {
			clt.logger.Debug(
				"pull request head moved while paging the check rollup, restarting query",
				logfields.Event("github_check_rollup_restarted"),
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.PullRequest(prNumber),
				logfields.Commit(commit.Oid),
			)

			result = checkRollup{}
			vars["contextsAfter"] = (*githubv4.String)(nil)

			continue
		}

		for _, edge := range commit.StatusCheckRollup.Contexts.Edges {
			node := edge.Node
			if node.CheckRun.Name != "" {
				run := node.CheckRun
				result.checkRuns = append(result.checkRuns, &run)
				continue
			}

			if node.StatusContext.Context != "" {
				status := node.StatusContext
				result.commitStatuses = append(result.commitStatuses, &status)
			}
		}

		pageInfo := commit.StatusCheckRollup.Contexts.PageInfo
		if !pageInfo.HasNextPage {
			result.rollupState = commit.StatusCheckRollup.State
			result.requiredContexts = q.Repository.PullRequest.BaseRef.BranchProtectionRule.RequiredStatusCheckContexts

			return &result, nil
		}

		if pageInfo.EndCursor == "" {
			return nil, fmt.Errorf("rollup contexts page reports a next page but an empty end cursor")
		}

		vars["contextsAfter"] = githubv4.String(pageInfo.EndCursor)
	}
}
