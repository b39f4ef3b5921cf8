package checkpoint

import (
	"context"
)

// Repository defines the operations for persisting the poll checkpoint under
// a fixed identifier, so a restart resumes from the last acknowledged point
// instead of re-notifying stale events.
type Repository interface {
	// Load returns the persisted checkpoint, or ErrCheckpointNotFound (from
	// the implementing package) when none has been saved yet.
	Load(ctx context.Context) (int64, error)
	Save(ctx context.Context, value int64) error
}
