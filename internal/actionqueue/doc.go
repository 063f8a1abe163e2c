// Package actionqueue stores and executes automated pull-request actions.
//
// The queue is the single source of truth for action state. An action moves
// through four partitions:
//
// - queued: waiting for a worker, ordered by priority, then age,
//
// - processing: currently executed by a worker,
//
// - completed: finished successfully, kept for status queries,
//
// - failed: exhausted its attempts or was cancelled, kept for status queries.
//
// Enqueueing is idempotent per (kind, owner, repo, number, params): while an
// identical action is queued or processing, enqueueing returns the existing
// id instead of inserting. This guarantees at most one outstanding identical
// action per pull request.
//
// Workers dequeue the highest-priority, oldest eligible action. A repository
// that reached its dequeue ceiling within the sliding rate window is skipped
// so one noisy repository cannot starve the others. Failed executions are
// retried with exponential backoff until the attempt limit is reached, the
// backoff wait occupies the worker slot.
//
// All state is in-memory. A process restart loses queued actions, and pool
// shutdown leaves mid-execution actions in the processing partition.
package actionqueue
