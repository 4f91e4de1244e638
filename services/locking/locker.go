// Package locking provides per-key mutual exclusion for scheduling writes.
package locking

import (
	"context"
	"time"
)

// Locker serialises work on a key. Lock blocks until the key is held or ctx
// is done, and returns the function that releases it.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Leased is implemented by lockers whose hold lapses on its own once Lease
// has elapsed since acquisition. Work done under such a lock must finish
// before then.
type Leased interface {
	Lease() time.Duration
}

// ProfessionalKey is the lock key guarding a professional's calendar.
func ProfessionalKey(professionalID string) string {
	return "professional:" + professionalID
}
