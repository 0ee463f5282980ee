// Sentinel errors shared across repositories so services and handlers
// can distinguish outcomes that need distinct user-facing responses.
// ErrSlotTaken in particular is an expected, frequent outcome of the
// booking race, not an infrastructure failure, and must never be
// conflated with a store error.
package repository

import "errors"

// ErrSlotTaken is returned by Reserve when a reservation already
// exists under the slot key. Handlers translate it into HTTP 409.
var ErrSlotTaken = errors.New("slot already taken")

// ErrForbidden is returned when the caller attempts an operation on a
// reservation owned by someone else. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a keyed record does not exist and the
// operation cannot use nil-object semantics (e.g. release).
var ErrNotFound = errors.New("not found")
