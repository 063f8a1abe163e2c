package actionqueue

import (
	"errors"
	"time"

	"github.com/merganser/merganser/internal/mergerr"
)

func newRetryableAfterErr(after time.Duration) error {
	return mergerr.NewRetryableError(
		errors.New("rate limited"),
		time.Now().Add(after),
	)
}
