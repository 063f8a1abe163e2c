package actionqueue

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind identifies the operation an action performs against GitHub.
type Kind string

const (
	KindMergePR     Kind = "merge-pr"
	KindSquashMerge Kind = "squash-merge"
	KindRebaseMerge Kind = "rebase-merge"

	KindUpdateBranch  Kind = "update-branch"
	KindRebaseBranch  Kind = "rebase-branch"
	KindSquashCommits Kind = "squash-commits"

	KindRerunChecks       Kind = "rerun-checks"
	KindRerunFailedChecks Kind = "rerun-failed-checks"
	KindSkipChecks        Kind = "skip-checks"

	KindAddLabel    Kind = "add-label"
	KindRemoveLabel Kind = "remove-label"
	KindSyncLabels  Kind = "sync-labels"

	KindCreateComment  Kind = "create-comment"
	KindEditComment    Kind = "edit-comment"
	KindDeleteComment  Kind = "delete-comment"
	KindResolveComment Kind = "resolve-comment"

	KindApplySuggestion  Kind = "apply-suggestion"
	KindCommitSuggestion Kind = "commit-suggestion"
	KindBatchSuggestion  Kind = "batch-suggestion"

	KindRequestReview  Kind = "request-review"
	KindApprovePR      Kind = "approve-pr"
	KindRequestChanges Kind = "request-changes"
	KindDismissReview  Kind = "dismiss-review"

	KindAddToMergeQueue      Kind = "add-to-merge-queue"
	KindRemoveFromMergeQueue Kind = "remove-from-merge-queue"

	KindOpenIssue  Kind = "open-issue"
	KindCloseIssue Kind = "close-issue"
	KindLinkIssue  Kind = "link-issue"

	KindAssignUser   Kind = "assign-user"
	KindUnassignUser Kind = "unassign-user"

	KindAddMilestone    Kind = "add-milestone"
	KindRemoveMilestone Kind = "remove-milestone"
)

// defPriorities maps every known kind to the priority it is enqueued with
// when the caller does not specify one.
var defPriorities = map[Kind]Priority{
	KindMergePR:     PriorityHigh,
	KindSquashMerge: PriorityHigh,
	KindRebaseMerge: PriorityHigh,

	KindUpdateBranch:  PriorityHigh,
	KindRebaseBranch:  PriorityHigh,
	KindSquashCommits: PriorityNormal,

	KindRerunChecks:       PriorityNormal,
	KindRerunFailedChecks: PriorityNormal,
	KindSkipChecks:        PriorityNormal,

	KindAddLabel:    PriorityNormal,
	KindRemoveLabel: PriorityNormal,
	KindSyncLabels:  PriorityBackground,

	KindCreateComment:  PriorityNormal,
	KindEditComment:    PriorityNormal,
	KindDeleteComment:  PriorityNormal,
	KindResolveComment: PriorityNormal,

	KindApplySuggestion:  PriorityLow,
	KindCommitSuggestion: PriorityLow,
	KindBatchSuggestion:  PriorityLow,

	KindRequestReview:  PriorityNormal,
	KindApprovePR:      PriorityNormal,
	KindRequestChanges: PriorityNormal,
	KindDismissReview:  PriorityNormal,

	KindAddToMergeQueue:      PriorityHigh,
	KindRemoveFromMergeQueue: PriorityHigh,

	KindOpenIssue:  PriorityLow,
	KindCloseIssue: PriorityLow,
	KindLinkIssue:  PriorityLow,

	KindAssignUser:   PriorityLow,
	KindUnassignUser: PriorityLow,

	KindAddMilestone:    PriorityLow,
	KindRemoveMilestone: PriorityLow,
}

// KindFromString validates val against the closed set of known kinds.
func KindFromString(val string) (Kind, error) {
	k := Kind(val)
	if _, exist := defPriorities[k]; !exist {
		return "", fmt.Errorf("unknown action kind: %q", val)
	}

	return k, nil
}

// DefaultPriority returns the priority actions of kind k get when none is
// specified at enqueue time.
func DefaultPriority(k Kind) Priority {
	if p, exist := defPriorities[k]; exist {
		return p
	}

	return PriorityNormal
}

// Priority orders actions in the queue, higher values are dequeued first.
type Priority int

const (
	PriorityBackground Priority = 1
	PriorityLow        Priority = 2
	PriorityNormal     Priority = 3
	PriorityHigh       Priority = 4
	PriorityCritical   Priority = 5
)

func (p Priority) String() string {
	switch p {
	case PriorityBackground:
		return "background"
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("invalid(%d)", int(p))
	}
}

func (p Priority) Valid() bool {
	return p >= PriorityBackground && p <= PriorityCritical
}

// PriorityFromString parses the textual priority representation used in
// config files and rule definitions.
func PriorityFromString(val string) (Priority, error) {
	switch val {
	case "background":
		return PriorityBackground, nil
	case "low":
		return PriorityLow, nil
	case "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	default:
		return 0, fmt.Errorf("unknown priority: %q", val)
	}
}

// Status describes where an action is in its lifecycle.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusRetrying   Status = "retrying"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Action is one unit of work against a pull request or issue.
// It is created by the queue and only mutated by it, everybody else
// receives copies.
type Action struct {
	ID             string         `json:"id"`
	Kind           Kind           `json:"kind"`
	Owner          string         `json:"owner"`
	Repo           string         `json:"repo"`
	Number         int            `json:"pr_number"`
	Params         map[string]any `json:"params"`
	Priority       Priority       `json:"priority"`
	Status         Status         `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Attempts       int            `json:"attempts"`
	MaxAttempts    int            `json:"max_attempts"`
	ErrorMessage   string         `json:"-"`
	Result         map[string]any `json:"result"`
	TriggeredBy    string         `json:"-"`
	ParentActionID string         `json:"-"`
}

// MarshalJSON serializes the wire format of an Action. Unset error_message,
// triggered_by and parent_action_id are emitted as null, not omitted.
func (a *Action) MarshalJSON() ([]byte, error) {
	type plain Action

	return json.Marshal(struct {
		*plain
		ErrorMessage   *string `json:"error_message"`
		TriggeredBy    *string `json:"triggered_by"`
		ParentActionID *string `json:"parent_action_id"`
	}{
		plain:          (*plain)(a),
		ErrorMessage:   nullableStr(a.ErrorMessage),
		TriggeredBy:    nullableStr(a.TriggeredBy),
		ParentActionID: nullableStr(a.ParentActionID),
	})
}

func nullableStr(val string) *string {
	if val == "" {
		return nil
	}

	return &val
}

func (a *Action) RepositoryKey() string {
	return a.Owner + "/" + a.Repo
}

func (a *Action) String() string {
	return fmt.Sprintf("%s %s/%s#%d (%s)", a.Kind, a.Owner, a.Repo, a.Number, a.ID)
}

// clone returns a copy that shares no mutable state with a.
// Params and Result values are assumed to not be modified after creation.
func (a *Action) clone() *Action {
	clone := *a

	if a.Params != nil {
		clone.Params = make(map[string]any, len(a.Params))
		for k, v := range a.Params {
			clone.Params[k] = v
		}
	}

	if a.Result != nil {
		clone.Result = make(map[string]any, len(a.Result))
		for k, v := range a.Result {
			clone.Result[k] = v
		}
	}

	return &clone
}

// dedupKey returns the identity under which two actions are considered
// duplicates: same kind, target and parameters.
// Params are canonicalized via JSON marshalling, map keys are serialized in
// sorted order.
func (a *Action) dedupKey() string {
	params, err := json.Marshal(a.Params)
	if err != nil {
		// Params come from JSON payloads or config files, both only
		// contain marshallable types.
		params = []byte(fmt.Sprintf("%v", a.Params))
	}

	return fmt.Sprintf("%s|%s|%s|%d|%s", a.Kind, a.Owner, a.Repo, a.Number, params)
}
