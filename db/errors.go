package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind tags every error leaving the store adapters so callers never
// have to inspect driver errors or codes.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindDuplicateKey
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindDuplicateKey:
		return "duplicate key"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a store error, KindUnknown for anything else.
func KindOf(err error) ErrorKind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return KindUnknown
}

// wrap classifies a driver error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := KindUnknown
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		kind = KindNotFound
	case mongo.IsDuplicateKeyError(err):
		kind = KindDuplicateKey
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, context.DeadlineExceeded), errors.Is(err, mongo.ErrClientDisconnected):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
