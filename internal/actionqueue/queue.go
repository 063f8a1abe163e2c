package actionqueue

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/logfields"
)

const loggerName = "actionqueue"

// rateLimitWindow is the sliding window over which per-repository dequeues
// are counted.
const rateLimitWindow = time.Minute

// Queue is the single source of truth for all action state.
// An action exists in exactly one of the four partitions (queued, processing,
// completed, failed) from enqueue until it is purged. Cancelled actions are
// stored in the failed partition with status cancelled.
// All methods are safe for concurrent use. Methods return copies, the queue
// is the only component that mutates an action.
type Queue struct {
	queued     map[string]*Action
	processing map[string]*Action
	completed  map[string]*Action
	failed     map[string]*Action

	// dedupIndex maps the dedup key of every action in the queued and
	// processing partitions to its id.
	dedupIndex map[string]string

	rateWindow  *repoRateWindow
	maxAttempts int

	lock sync.Mutex

	logger *zap.Logger
}

// EnqueueRequest describes the action to create.
type EnqueueRequest struct {
	Kind   Kind
	Owner  string
	Repo   string
	Number int
	Params map[string]any
	// Priority overrides the kind's default priority when set.
	Priority       Priority
	TriggeredBy    string
	ParentActionID string
}

func New(maxAttempts, repoDequeuesPerMinute int) *Queue {
	return &Queue{
		queued:      map[string]*Action{},
		processing:  map[string]*Action{},
		completed:   map[string]*Action{},
		failed:      map[string]*Action{},
		dedupIndex:  map[string]string{},
		rateWindow:  newRepoRateWindow(rateLimitWindow, repoDequeuesPerMinute),
		maxAttempts: maxAttempts,
		logger:      zap.L().Named(loggerName),
	}
}

// Enqueue creates a new queued action and returns its id.
// If an action with the same kind, target and parameters is already queued or
// processing, nothing is inserted and the id of the existing action is
// returned with deduplicated set to true.
func (q *Queue) Enqueue(req *EnqueueRequest) (id string, deduplicated bool, err error) {
	if _, err := KindFromString(string(req.Kind)); err != nil {
		return "", false, err
	}

	if req.Owner == "" || req.Repo == "" {
		return "", false, fmt.Errorf("owner and repo must be set, got: %q, %q", req.Owner, req.Repo)
	}

	priority := req.Priority
	if priority == 0 {
		priority = DefaultPriority(req.Kind)
	}
	if !priority.Valid() {
		return "", false, fmt.Errorf("invalid priority: %d", priority)
	}

	now := time.Now()
	act := &Action{
		ID:             uuid.NewString(),
		Kind:           req.Kind,
		Owner:          req.Owner,
		Repo:           req.Repo,
		Number:         req.Number,
		Params:         req.Params,
		Priority:       priority,
		Status:         StatusQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
		MaxAttempts:    q.maxAttempts,
		TriggeredBy:    req.TriggeredBy,
		ParentActionID: req.ParentActionID,
	}

	key := act.dedupKey()

	q.lock.Lock()
	defer q.lock.Unlock()

	if existingID, exist := q.dedupIndex[key]; exist {
		metrics.OpsInc(operationLabelDeduplicateVal)
		q.logger.Debug(
			"duplicate action not enqueued",
			logEventDeduplicated,
			logfields.ActionID(existingID),
			logfields.ActionKind(string(act.Kind)),
			logfields.Repository(act.Repo),
			logfields.RepositoryOwner(act.Owner),
			logfields.PullRequest(act.Number),
		)

		return existingID, true, nil
	}

	q.queued[act.ID] = act
	q.dedupIndex[key] = act.ID
	metrics.OpsInc(operationLabelEnqueueVal)
	q._updatePartitionMetrics()

	q.logger.Info(
		"action enqueued",
		logEventEnqueued,
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
		logfields.Priority(int(act.Priority)),
		logfields.Repository(act.Repo),
		logfields.RepositoryOwner(act.Owner),
		logfields.PullRequest(act.Number),
		logfields.TriggeredBy(act.TriggeredBy),
	)

	return act.ID, false, nil
}

// DequeueNext moves the most urgent eligible queued action to the processing
// partition and returns a copy of it.
// Eligible are actions with status queued whose repository is below the
// per-repository rate ceiling. Urgency is highest priority first, oldest
// creation time second.
// It returns nil if no eligible action exists.
func (q *Queue) DequeueNext() *Action {
	q.lock.Lock()
	defer q.lock.Unlock()

	now := time.Now()

	var next *Action
	for _, act := range q.queued {
		if act.Status != StatusQueued {
			continue
		}

		if !q.rateWindow.allows(act.RepositoryKey(), now) {
			continue
		}

		if next == nil || moreUrgent(act, next) {
			next = act
		}
	}

	if next == nil {
		return nil
	}

	delete(q.queued, next.ID)
	next.Status = StatusProcessing
	next.UpdatedAt = now
	q.processing[next.ID] = next

	q.rateWindow.record(next.RepositoryKey(), now)
	metrics.OpsInc(operationLabelDequeueVal)
	q._updatePartitionMetrics()

	q.logger.Debug(
		"action dequeued",
		logEventDequeued,
		logfields.ActionID(next.ID),
		logfields.ActionKind(string(next.Kind)),
		logfields.Attempt(next.Attempts),
	)

	return next.clone()
}

// moreUrgent returns true if a must be dequeued before b.
func moreUrgent(a, b *Action) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}

	return a.ID < b.ID
}

// Complete moves a processing action to the completed partition and stores
// the handler result.
func (q *Queue) Complete(actionID string, result map[string]any) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	act, exist := q.processing[actionID]
	if !exist {
		return fmt.Errorf("completing action %q: %w", actionID, ErrNotProcessing)
	}

	delete(q.processing, actionID)
	delete(q.dedupIndex, act.dedupKey())

	act.Status = StatusCompleted
	act.Result = result
	act.UpdatedAt = time.Now()
	q.completed[act.ID] = act

	metrics.OpsInc(operationLabelCompleteVal)
	q._updatePartitionMetrics()

	q.logger.Info(
		"action completed",
		logEventCompleted,
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
		logfields.Attempt(act.Attempts),
	)

	return nil
}

// FailOrRetry records a failed execution attempt.
// If the attempt limit is not reached, the action transitions to status
// retrying and is moved back to the queued partition, keeping its original
// creation time. It stays ineligible for dequeueing until Requeue is called.
// Otherwise it is moved to the failed partition terminally.
func (q *Queue) FailOrRetry(actionID string, execErr error) (terminal bool, attempts int, err error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	act, exist := q.processing[actionID]
	if !exist {
		return false, 0, fmt.Errorf("failing action %q: %w", actionID, ErrNotProcessing)
	}

	act.Attempts++
	act.ErrorMessage = execErr.Error()
	act.UpdatedAt = time.Now()
	delete(q.processing, actionID)

	if act.Attempts >= act.MaxAttempts {
		delete(q.dedupIndex, act.dedupKey())
		act.Status = StatusFailed
		q.failed[act.ID] = act

		metrics.OpsInc(operationLabelFailVal)
		q._updatePartitionMetrics()

		q.logger.Warn(
			"action failed terminally",
			logEventFailed,
			logfields.ActionID(act.ID),
			logfields.ActionKind(string(act.Kind)),
			logfields.ActionStatus(string(act.Status)),
			logfields.Attempt(act.Attempts),
			zap.Error(execErr),
		)

		return true, act.Attempts, nil
	}

	act.Status = StatusRetrying
	q.queued[act.ID] = act

	metrics.OpsInc(operationLabelRetryVal)
	q._updatePartitionMetrics()

	q.logger.Info(
		"action scheduled for retry",
		logEventRetrying,
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
		logfields.Attempt(act.Attempts),
		zap.Error(execErr),
	)

	return false, act.Attempts, nil
}

// Requeue makes a retrying action eligible for dequeueing again.
// Callers invoke it after waiting the retry backoff delay.
// If the action was cancelled or removed in the meantime, ErrNotFound is
// returned.
func (q *Queue) Requeue(actionID string) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	act, exist := q.queued[actionID]
	if !exist {
		return ErrNotFound
	}

	if act.Status == StatusRetrying {
		act.Status = StatusQueued
		act.UpdatedAt = time.Now()
	}

	return nil
}

// Cancel aborts an action that is in the queued partition.
// It returns true on success. Actions that are processing or terminal are
// left unchanged and false is returned.
func (q *Queue) Cancel(actionID string) bool {
	q.lock.Lock()
	defer q.lock.Unlock()

	act, exist := q.queued[actionID]
	if !exist {
		return false
	}

	delete(q.queued, actionID)
	delete(q.dedupIndex, act.dedupKey())

	act.Status = StatusCancelled
	act.UpdatedAt = time.Now()
	q.failed[act.ID] = act

	metrics.OpsInc(operationLabelCancelVal)
	q._updatePartitionMetrics()

	q.logger.Info(
		"action cancelled",
		logEventCancelled,
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
	)

	return true
}

// Status returns a copy of the action with the given id, searching all
// partitions.
func (q *Queue) Status(actionID string) (*Action, error) {
	q.lock.Lock()
	defer q.lock.Unlock()

	for _, partition := range q._partitions() {
		if act, exist := partition[actionID]; exist {
			return act.clone(), nil
		}
	}

	return nil, ErrNotFound
}

// Stats holds the size of every queue partition.
// Failed includes cancelled actions.
type Stats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

func (q *Queue) Stats() Stats {
	q.lock.Lock()
	defer q.lock.Unlock()

	return Stats{
		Queued:     len(q.queued),
		Processing: len(q.processing),
		Completed:  len(q.completed),
		Failed:     len(q.failed),
	}
}

// ActionsFor returns copies of all actions targeting the given pull request
// or issue, across all partitions, ordered by creation time.
func (q *Queue) ActionsFor(owner, repo string, number int) []*Action {
	q.lock.Lock()
	defer q.lock.Unlock()

	var result []*Action
	for _, partition := range q._partitions() {
		for _, act := range partition {
			if act.Owner == owner && act.Repo == repo && act.Number == number {
				result = append(result, act.clone())
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}

		return result[i].ID < result[j].ID
	})

	return result
}

// PurgeTerminal removes completed and failed actions whose last update is
// older than olderThan and returns how many were removed.
func (q *Queue) PurgeTerminal(olderThan time.Duration) int {
	q.lock.Lock()
	defer q.lock.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0

	for _, partition := range []map[string]*Action{q.completed, q.failed} {
		for id, act := range partition {
			if act.UpdatedAt.Before(cutoff) {
				delete(partition, id)
				removed++
			}
		}
	}

	if removed == 0 {
		return 0
	}

	metrics.OpsInc(operationLabelPurgeVal)
	q._updatePartitionMetrics()

	q.logger.Info(
		"terminal actions purged",
		logEventPurged,
		zap.Int("purged_count", removed),
		zap.Duration("older_than", olderThan),
	)

	return removed
}

func (q *Queue) _partitions() []map[string]*Action {
	return []map[string]*Action{q.queued, q.processing, q.completed, q.failed}
}

func (q *Queue) _updatePartitionMetrics() {
	metrics.SetPartitionSize(string(StatusQueued), len(q.queued))
	metrics.SetPartitionSize(string(StatusProcessing), len(q.processing))
	metrics.SetPartitionSize(string(StatusCompleted), len(q.completed))
	metrics.SetPartitionSize(string(StatusFailed), len(q.failed))
}
