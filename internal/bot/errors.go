package bot

import (
	"errors"
	"fmt"

	"nuclight.org/dalbozz/internal/poll"
)

// UserError carries a message that is safe to send back to the user,
// optionally with the underlying failure for the logs.
type UserError struct {
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *UserError) Unwrap() error { return e.Cause }

func UserErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WrapUserError pairs a user-facing message with the error that caused it.
func WrapUserError(message string, cause error) *UserError {
	return &UserError{Message: message, Cause: cause}
}

// GetUserMessage returns what to tell the user about err. Anything that is
// not a UserError is reported as MsgInternalError.
func GetUserMessage(err error) string {
	if ue := (*UserError)(nil); errors.As(err, &ue) {
		return ue.Message
	}
	return MsgInternalError
}

// ShouldLog reports whether err is worth logging. A UserError without a
// cause is the user's own mistake.
func ShouldLog(err error) bool {
	if ue := (*UserError)(nil); errors.As(err, &ue) {
		return ue.Cause != nil
	}
	return true
}

// userErrorFor translates registry errors into what the user is told.
func userErrorFor(err error) error {
	if errors.Is(err, poll.ErrTooManyOptions) {
		return UserErrorf("%s", MsgTooManyOptions)
	}

	var adapterErr *poll.AdapterError
	if errors.As(err, &adapterErr) {
		switch adapterErr.Op {
		case poll.OpPostPoll:
			return WrapUserError(MsgFailedPostPoll, err)
		case poll.OpSendPreview:
			return WrapUserError(MsgFailedAddGame, err)
		}
	}
	return err
}
