package actionqueue

import (
	"github.com/merganser/merganser/internal/logfields"
)

var (
	logEventEnqueued     = logfields.Event("action_enqueued")
	logEventDeduplicated = logfields.Event("action_deduplicated")
	logEventDequeued     = logfields.Event("action_dequeued")
	logEventCompleted    = logfields.Event("action_completed")
	logEventRetrying     = logfields.Event("action_retrying")
	logEventFailed       = logfields.Event("action_failed")
	logEventCancelled    = logfields.Event("action_cancelled")
	logEventPurged       = logfields.Event("actions_purged")
)
