package poll

import (
	"errors"
	"fmt"
)

// ErrTooManyOptions is returned when every regional indicator is taken.
var ErrTooManyOptions = errors.New("too many options")

// Operations reported in AdapterError.Op.
const (
	OpAnnounce         = "announce poll"
	OpSendInstructions = "send instructions"
	OpReplyNoPoll      = "reply without poll"
	OpPostPoll         = "post poll"
	OpSendPreview      = "send preview"
)

// AdapterError reports a failed outbound call to the chat platform.
type AdapterError struct {
	Op  string
	Err error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

func adapterError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &AdapterError{Op: op, Err: err}
}
