package actionqueue

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNotProcessing = errors.New("action is not in processing state")
)
