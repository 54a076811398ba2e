package walleterr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a wallet failure so callers can branch without matching strings.
type Kind string

const (
	KindConfiguration           Kind = "configuration"
	KindInvalidRecipient        Kind = "invalid_recipient"
	KindInvalidAmount           Kind = "invalid_amount"
	KindAmountOutOfRange        Kind = "amount_out_of_range"
	KindInsufficientBalance     Kind = "insufficient_balance"
	KindTransport               Kind = "transport"
	KindMalformedPersistedState Kind = "malformed_persisted_state"
	KindCooldown                Kind = "cooldown"
	KindInternal                Kind = "internal"
)

// Error is the tagged error returned by wallet components.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	default:
		return e.Msg
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap tags cause with kind. A nil cause yields nil.
func Wrap(kind Kind, msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of the outermost tagged error in the chain,
// or KindInternal for untagged errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfiguration:
		return 2
	case KindInvalidRecipient, KindInvalidAmount, KindAmountOutOfRange:
		return 3
	case KindInsufficientBalance:
		return 4
	case KindCooldown:
		return 5
	case KindTransport:
		return 6
	default:
		return 1
	}
}

// HTTPStatus maps an error to the status code used by the HTTP handlers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidRecipient, KindInvalidAmount, KindAmountOutOfRange:
		return http.StatusBadRequest
	case KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	case KindCooldown:
		return http.StatusTooManyRequests
	case KindTransport:
		return http.StatusBadGateway
	case KindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
