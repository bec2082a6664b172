// Package apperr classifies the failures that abort a fetch run.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Every Error wraps exactly one of them.
var (
	// ErrInternal marks a broken invariant the program itself should guarantee,
	// such as a store returning the wrong number of rows.
	ErrInternal = errors.New("internal contract violated")

	// ErrPeer marks data from the remote API or the store that breaks the
	// expected contract: wrong types, missing keys, unexpected cardinality.
	ErrPeer = errors.New("peer contract violated")

	// ErrUser marks invalid caller-supplied input.
	ErrUser = errors.New("invalid user input")
)

// Error carries the kind of failure together with the operation that hit it.
type Error struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind. errors.Is still walks Unwrap for the cause.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Internal builds an internal-contract error.
func Internal(op, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Peer builds a peer-trust error.
func Peer(op, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrPeer, Op: op, Message: fmt.Sprintf(format, args...)}
}

// User builds a user-input error.
func User(op, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrUser, Op: op, Message: fmt.Sprintf(format, args...)}
}

// PeerWrap builds a peer-trust error around a lower level cause.
func PeerWrap(op, message string, err error) *Error {
	return &Error{Kind: ErrPeer, Op: op, Message: message, Err: err}
}

// IsInternal returns true if the error or its cause is an internal error
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

// IsPeer returns true if the error or its cause is a peer-trust error
func IsPeer(err error) bool {
	return errors.Is(err, ErrPeer)
}

// IsUser returns true if the error or its cause is a user-input error
func IsUser(err error) bool {
	return errors.Is(err, ErrUser)
}

// KindOf names the kind for logs and metric labels.
func KindOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsInternal(err):
		return "internal"
	case IsPeer(err):
		return "peer"
	case IsUser(err):
		return "user"
	default:
		return "unclassified"
	}
}
