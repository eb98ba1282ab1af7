package errors

import (
	"context"
	"errors"
	"fmt"
)

// UpstreamStatusError means an upstream answered with a non-2xx status.
type UpstreamStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s request failed with status %d", e.Endpoint, e.StatusCode)
}

// ShapeError means an upstream answered 2xx but the body does not match the
// expected contract.
type ShapeError struct {
	Message string
}

func (e *ShapeError) Error() string {
	return e.Message
}

// TransportError wraps a network-level failure reaching an upstream.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// InvalidAddressError means a wallet address failed hex validation before any
// upstream call was issued.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid wallet address: %s", e.Address)
}

// CacheMissError means an address lookup found nothing in the leaderboard cache.
type CacheMissError struct {
	Address string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("no cached leaderboard user for address %s", e.Address)
}

// IsAbort reports whether err is a cancellation rather than a real failure.
// Superseded and disposed loads surface as context cancellation; controllers
// swallow these instead of recording an error state.
func IsAbort(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
