// Package internal contains infrastructure shared by the uipanel packages:
// logger plumbing and the instance ID source.
// Types and functions in this package are not part of the public API.
package internal

import "go.uber.org/atomic"

var lastID = atomic.NewUint64(0)

// NextID returns a process-unique, non-zero instance identifier.
func NextID() uint64 {
	return lastID.Inc()
}
