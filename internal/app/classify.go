// internal/app/classify.go
package app

import "errors"

// Disposition tells the poll loop what to do with a cycle failure. Startup
// failures never reach here: missing configuration aborts the process before
// the loop starts, and the empty-feed condition is an ordinary branch of the
// cycle rather than an error.
type Disposition int

const (
	// DispositionReport surfaces the failure as a chat message (deduplicated
	// like any other) and continues the loop.
	DispositionReport Disposition = iota
	// DispositionLocalOnly logs the failure without notifying, so a delivery
	// failure cannot trigger a notify-about-notify-failure loop.
	DispositionLocalOnly
)

// Classify maps any failure raised during a cycle to its disposition.
func Classify(err error) Disposition {
	if errors.Is(err, ErrDeliveryFailed) {
		return DispositionLocalOnly
	}
	return DispositionReport
}
