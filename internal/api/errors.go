package api

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrRateLimited
	ErrNotFound
	ErrNetwork
)

func (k ErrorKind) String() string {
	switch k {
	case ErrRateLimited:
		return "rate_limited"
	case ErrNotFound:
		return "not_found"
	case ErrNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// UpstreamError is the typed failure surfaced by every provider client.
// It is never cached; RateLimited and Network failures are safe to retry,
// NotFound is not.
type UpstreamError struct {
	Kind       ErrorKind
	Provider   string
	Path       string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Kind, e.Provider, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: status %d", e.Kind, e.Provider, e.Path, e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func KindOf(err error) ErrorKind {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ErrUnknown
}

func IsNotFound(err error) bool {
	return KindOf(err) == ErrNotFound
}

func IsRateLimited(err error) bool {
	return KindOf(err) == ErrRateLimited
}

// Retryable reports whether the caller may retry with backoff.
func Retryable(err error) bool {
	k := KindOf(err)
	return k == ErrRateLimited || k == ErrNetwork
}
