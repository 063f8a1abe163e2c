package actionqueue

import "time"

// repoRateWindow enforces a per-repository dequeue ceiling over a sliding
// time window.
// It is not safe for concurrent use, the queue serializes access via its
// lock.
type repoRateWindow struct {
	window   time.Duration
	ceiling  int
	dequeues map[string][]time.Time
}

func newRepoRateWindow(window time.Duration, ceiling int) *repoRateWindow {
	return &repoRateWindow{
		window:   window,
		ceiling:  ceiling,
		dequeues: map[string][]time.Time{},
	}
}

// allows returns true if the repository is below its ceiling and another
// dequeue may happen now.
func (w *repoRateWindow) allows(repoKey string, now time.Time) bool {
	w.prune(repoKey, now)
	return len(w.dequeues[repoKey]) < w.ceiling
}

// record registers a successful dequeue for the repository.
func (w *repoRateWindow) record(repoKey string, now time.Time) {
	w.dequeues[repoKey] = append(w.dequeues[repoKey], now)
}

func (w *repoRateWindow) prune(repoKey string, now time.Time) {
	entries, exist := w.dequeues[repoKey]
	if !exist {
		return
	}

	cutoff := now.Add(-w.window)
	keep := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			keep = append(keep, t)
		}
	}

	if len(keep) == 0 {
		delete(w.dequeues, repoKey)
		return
	}

	w.dequeues[repoKey] = keep
}
