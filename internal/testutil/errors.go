package testutil

import "errors"

// ErrSimulated stands in for a store, network or renderer failure.
var ErrSimulated = errors.New("simulated failure")
