package actionqueue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const condCheckInterval = 20 * time.Millisecond
const condWaitTimeout = 5 * time.Second

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type dispatcherFunc func(ctx context.Context, act *Action) (map[string]any, error)

func (fn dispatcherFunc) Dispatch(ctx context.Context, act *Action) (map[string]any, error) {
	return fn(ctx, act)
}

func waitForStats(t *testing.T, q *Queue, want Stats) {
	t.Helper()

	require.Eventuallyf(
		t,
		func() bool { return q.Stats() == want },
		condWaitTimeout,
		condCheckInterval,
		"queue stats did not reach %+v, last: %+v", want, q.Stats(),
	)
}

func TestPoolProcessesQueuedActions(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	q := New(3, 100)

	var dispatched atomic.Int32
	dispatcher := dispatcherFunc(func(_ context.Context, act *Action) (map[string]any, error) {
		dispatched.Add(1)
		return map[string]any{"kind": string(act.Kind)}, nil
	})

	pool := NewPool(q, dispatcher, 2, 10*time.Millisecond)
	pool.Start()
	t.Cleanup(pool.Stop)

	for prNumber := 1; prNumber <= 3; prNumber++ {
		mustEnqueue(t, q, enqueueReq(KindCreateComment, prNumber, nil))
	}

	waitForStats(t, q, Stats{Completed: 3})
	assert.EqualValues(t, 3, dispatched.Load())
	assert.True(t, pool.Running())
}

func TestPoolRetriesUntilTerminalFailure(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	q := New(3, 100)

	var dispatched atomic.Int32
	dispatcher := dispatcherFunc(func(context.Context, *Action) (map[string]any, error) {
		dispatched.Add(1)
		return nil, errors.New("remote unavailable")
	})

	pool := NewPool(q, dispatcher, 1, time.Millisecond)
	pool.Start()
	t.Cleanup(pool.Stop)

	id := mustEnqueue(t, q, enqueueReq(KindMergePR, 1, nil))

	waitForStats(t, q, Stats{Failed: 1})
	assert.EqualValues(t, 3, dispatched.Load())

	act, err := q.Status(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, act.Status)
	assert.Equal(t, 3, act.Attempts)
	assert.Equal(t, "remote unavailable", act.ErrorMessage)
}

func TestPoolStopLeavesInflightActionInProcessing(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	q := New(3, 100)

	dispatcher := dispatcherFunc(func(ctx context.Context, _ *Action) (map[string]any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	pool := NewPool(q, dispatcher, 1, time.Millisecond)
	pool.Start()

	id := mustEnqueue(t, q, enqueueReq(KindMergePR, 1, nil))
	waitForStats(t, q, Stats{Processing: 1})

	pool.Stop()
	assert.False(t, pool.Running())

	// shutdown does not recover mid-execution actions, they stay in the
	// processing partition
	act, err := q.Status(id)
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, act.Status)
	assert.Equal(t, Stats{Processing: 1}, q.Stats())
}

func TestPoolStopDuringRetryWaitRequeuesAction(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	q := New(3, 100)

	var dispatched atomic.Int32
	dispatcher := dispatcherFunc(func(context.Context, *Action) (map[string]any, error) {
		dispatched.Add(1)
		return nil, errors.New("flaky")
	})

	// retry delay far beyond the test duration, the worker sits in the
	// backoff wait when Stop is called
	pool := NewPool(q, dispatcher, 1, time.Hour)
	pool.Start()

	id := mustEnqueue(t, q, enqueueReq(KindMergePR, 1, nil))

	require.Eventuallyf(
		t,
		func() bool { return dispatched.Load() == 1 },
		condWaitTimeout,
		condCheckInterval,
		"action was not dispatched",
	)

	pool.Stop()

	act, err := q.Status(id)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, act.Status, "interrupted retry wait must leave the action eligible")
	assert.Equal(t, 1, act.Attempts)
}

func TestPoolHonorsRetryableAfter(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	q := New(3, 100)

	var dispatched atomic.Int32
	var firstFailure time.Time
	var secondTry time.Time

	retryAfter := 150 * time.Millisecond

	dispatcher := dispatcherFunc(func(context.Context, *Action) (map[string]any, error) {
		switch dispatched.Add(1) {
		case 1:
			firstFailure = time.Now()
			return nil, newRetryableAfterErr(retryAfter)
		default:
			secondTry = time.Now()
			return map[string]any{}, nil
		}
	})

	pool := NewPool(q, dispatcher, 1, time.Millisecond)
	pool.Start()
	t.Cleanup(pool.Stop)

	mustEnqueue(t, q, enqueueReq(KindMergePR, 1, nil))

	waitForStats(t, q, Stats{Completed: 1})
	assert.GreaterOrEqual(t, secondTry.Sub(firstFailure), retryAfter)
}
