// Package slot provides a single named slot of durable key-value storage —
// the Go counterpart of a browser's localStorage entry. The cart store
// writes its full serialized state into one slot after every mutation and
// reads it back at startup.
//
// Two drivers exist: a local-file driver (default) and a redis driver for
// hosts that already run redis. Both store the value verbatim; corruption
// handling is the caller's concern (the cart treats any unreadable slot as
// empty).
package slot

import "errors"

// ErrEmpty is returned by Read when the slot has never been written.
var ErrEmpty = errors.New("slot: empty")

// Store is one durable named slot.
type Store interface {
	// Read returns the last written value, or ErrEmpty.
	Read() ([]byte, error)
	// Write replaces the slot's value.
	Write(data []byte) error
	// Clear removes the slot. Clearing an absent slot is a no-op.
	Clear() error
}
