package mdb

import "errors"

// Sentinel errors distinguishing why an MDB call failed to produce a result.
var (
	// ErrNotConfigured means no API token is set.
	ErrNotConfigured = errors.New("mdb: api token not configured")
	// ErrTimeout means the request exceeded its deadline.
	ErrTimeout = errors.New("mdb: request timed out")
	// ErrConnection means the request failed before receiving a response.
	ErrConnection = errors.New("mdb: connection failed")
)
