package actionqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/merganser/merganser/internal/logfields"
	"github.com/merganser/merganser/internal/mergerr"
)

const (
	idleWaitMin = 50 * time.Millisecond
	idleWaitMax = time.Second
)

// Dispatcher resolves and executes the operation behind an action.
type Dispatcher interface {
	Dispatch(ctx context.Context, act *Action) (result map[string]any, err error)
}

// Pool drains the queue with a fixed number of concurrent workers.
// Each worker dequeues the most urgent action, dispatches it and records the
// outcome. The retry backoff wait happens on the worker itself, occupying its
// slot, so retries throttle the pool instead of requiring a separate delay
// queue.
type Pool struct {
	queue      *Queue
	dispatcher Dispatcher
	workerCnt  int
	// retryDelay is the base unit of the exponential retry backoff, a
	// worker waits retryDelay * 2^attempts before requeueing.
	retryDelay time.Duration

	logger   *zap.Logger
	stopFunc context.CancelFunc
	wg       sync.WaitGroup
	running  atomic.Bool
}

func NewPool(queue *Queue, dispatcher Dispatcher, workerCnt int, retryDelay time.Duration) *Pool {
	return &Pool{
		queue:      queue,
		dispatcher: dispatcher,
		workerCnt:  workerCnt,
		retryDelay: retryDelay,
		logger:     zap.L().Named("workers"),
	}
}

// Start launches the worker goroutines. It must be called only once.
func (p *Pool) Start() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	p.stopFunc = cancelFunc
	p.running.Store(true)

	for i := 0; i < p.workerCnt; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	p.logger.Info(
		"worker pool started",
		logfields.Event("worker_pool_started"),
		zap.Int("worker_count", p.workerCnt),
	)
}

// Stop cancels all workers and waits for their termination.
// Actions that were mid-execution stay in the processing partition, they are
// not requeued.
func (p *Pool) Stop() {
	p.logger.Debug("worker pool terminating", logfields.Event("worker_pool_terminating"))

	if p.stopFunc != nil {
		p.stopFunc()
	}

	p.wg.Wait()
	p.running.Store(false)

	p.logger.Info("worker pool terminated", logfields.Event("worker_pool_terminated"))
}

func (p *Pool) Running() bool {
	return p.running.Load()
}

func (p *Pool) WorkerCnt() int {
	return p.workerCnt
}

func (p *Pool) worker(ctx context.Context, workerNum int) {
	defer p.wg.Done()

	logger := p.logger.With(zap.Int("worker", workerNum))

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = idleWaitMin
	bo.MaxInterval = idleWaitMax
	bo.MaxElapsedTime = 0

	for {
		if ctx.Err() != nil {
			return
		}

		act := p.queue.DequeueNext()
		if act == nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(bo.NextBackOff()):
			}

			continue
		}

		bo.Reset()
		p.process(ctx, logger, act)
	}
}

func (p *Pool) process(ctx context.Context, logger *zap.Logger, act *Action) {
	logger = logger.With(
		logfields.ActionID(act.ID),
		logfields.ActionKind(string(act.Kind)),
		logfields.Repository(act.Repo),
		logfields.RepositoryOwner(act.Owner),
		logfields.PullRequest(act.Number),
	)

	startTime := time.Now()
	result, err := p.dispatcher.Dispatch(ctx, act)
	metrics.ObserveActionDuration(act.Kind, time.Since(startTime).Seconds())

	if err != nil && ctx.Err() != nil {
		// shutdown interrupted the handler, the action stays in the
		// processing partition and is not recovered on restart
		logger.Warn(
			"action execution interrupted by shutdown",
			logfields.Event("action_execution_interrupted"),
			zap.Error(err),
		)

		return
	}

	if err == nil {
		if err := p.queue.Complete(act.ID, result); err != nil {
			logger.Error(
				"recording action completion failed",
				logfields.Event("action_state_update_failed"),
				zap.Error(err),
			)
		}

		return
	}

	terminal, attempts, stateErr := p.queue.FailOrRetry(act.ID, err)
	if stateErr != nil {
		logger.Error(
			"recording action failure failed",
			logfields.Event("action_state_update_failed"),
			zap.Error(stateErr),
		)

		return
	}

	if terminal {
		return
	}

	delay := p.retryDelay * (1 << attempts)

	var retryable *mergerr.RetryableError
	if errors.As(err, &retryable) && !retryable.After.IsZero() {
		if until := time.Until(retryable.After); until > delay {
			delay = until
		}
	}

	logger.Debug(
		"waiting before retry",
		logfields.Event("action_retry_wait"),
		zap.Duration("delay", delay),
		logfields.Attempt(attempts),
	)

	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}

	// requeue also on shutdown, a retrying action must not stay
	// ineligible forever
	if err := p.queue.Requeue(act.ID); err != nil {
		logger.Debug(
			"action not requeued after backoff wait",
			logfields.Event("action_requeue_skipped"),
			zap.Error(err),
		)
	}
}
