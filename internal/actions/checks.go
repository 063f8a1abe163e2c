package actions

import (
	"context"

	"github.com/google/go-github/v59/github"

	"github.com/merganser/merganser/internal/actionqueue"
)

// checksHandler reruns check runs of the pull request head commit and stamps
// required checks as succeeded for the skip-checks kind.
// Failures of individual rerun calls are collected in the result, they do
// not fail the action.
type checksHandler struct {
	clt GithubClient
}

func (h *checksHandler) Name() string { return "checks" }

func (h *checksHandler) Run(ctx context.Context, act *actionqueue.Action) (map[string]any, error) {
	pr, err := h.clt.GetPullRequest(ctx, act.Owner, act.Repo, act.Number)
	if err != nil {
		return nil, err
	}

	if pr == nil {
		return nil, newPreconditionError("pull request %s/%s#%d does not exist", act.Owner, act.Repo, act.Number)
	}

	headSHA := pr.GetHead().GetSHA()
	if headSHA == "" {
		return nil, newPreconditionError("pull request has no head commit")
	}

	if act.Kind == actionqueue.KindSkipChecks {
		return h.skipChecks(ctx, act, pr.GetBase().GetRef(), headSHA)
	}

	return h.rerunChecks(ctx, act, headSHA)
}

func (h *checksHandler) rerunChecks(ctx context.Context, act *actionqueue.Action, headSHA string) (map[string]any, error) {
	failedOnly, err := boolParam(act.Params, "failed_only")
	if err != nil {
		return nil, err
	}
	failedOnly = failedOnly || act.Kind == actionqueue.KindRerunFailedChecks

	checkIDs, err := int64SliceParam(act.Params, "check_ids")
	if err != nil {
		return nil, err
	}

	runs, err := h.clt.ListCheckRuns(ctx, act.Owner, act.Repo, headSHA)
	if err != nil {
		return nil, err
	}

	matching := filterCheckRuns(runs, checkIDs, failedOnly)

	rerun := make([]string, 0, len(matching))
	rerunErrors := map[string]any{}

	for _, run := range matching {
		if err := h.clt.RerunCheckRun(ctx, act.Owner, act.Repo, run.GetID()); err != nil {
			rerunErrors[run.GetName()] = err.Error()
			continue
		}

		rerun = append(rerun, run.GetName())
	}

	result := map[string]any{
		"head_sha":    headSHA,
		"rerun":       rerun,
		"rerun_count": len(rerun),
	}
	if len(rerunErrors) > 0 {
		result["errors"] = rerunErrors
	}

	return result, nil
}

func filterCheckRuns(runs []*github.CheckRun, checkIDs []int64, failedOnly bool) []*github.CheckRun {
	if len(checkIDs) > 0 {
		wanted := make(map[int64]struct{}, len(checkIDs))
		for _, id := range checkIDs {
			wanted[id] = struct{}{}
		}

		var result []*github.CheckRun
		for _, run := range runs {
			if _, exist := wanted[run.GetID()]; exist {
				result = append(result, run)
			}
		}

		return result
	}

	if !failedOnly {
		return runs
	}

	var result []*github.CheckRun
	for _, run := range runs {
		switch run.GetConclusion() {
		case "failure", "timed_out", "cancelled", "startup_failure":
			result = append(result, run)
		}
	}

	return result
}

// skipChecks reports a successful commit status for every required check
// context of the base branch. Check runs of third-party apps cannot be
// force-concluded, stamping the contexts satisfies branch protection
// instead.
func (h *checksHandler) skipChecks(ctx context.Context, act *actionqueue.Action, baseBranch, headSHA string) (map[string]any, error) {
	required, err := h.clt.RequiredStatusChecks(ctx, act.Owner, act.Repo, baseBranch)
	if err != nil {
		return nil, err
	}

	if len(required) == 0 {
		return map[string]any{
			"skipped":  []string{},
			"head_sha": headSHA,
			"reason":   "base branch has no required checks",
		}, nil
	}

	skipped := make([]string, 0, len(required))
	skipErrors := map[string]any{}

	for _, statusContext := range required {
		err := h.clt.CreateCommitStatus(
			ctx,
			act.Owner, act.Repo, headSHA,
			statusContext,
			"success",
			"skipped by "+act.TriggeredBy,
		)
		if err != nil {
			skipErrors[statusContext] = err.Error()
			continue
		}

		skipped = append(skipped, statusContext)
	}

	result := map[string]any{
		"skipped":  skipped,
		"head_sha": headSHA,
	}
	if len(skipErrors) > 0 {
		result["errors"] = skipErrors
	}

	return result, nil
}
