package interfaces

import (
	"context"

	"github.com/venuescope/venuesync/pkg/domain/model"
)

// SyncRunRepository defines the interface for sync run history persistence
type SyncRunRepository interface {
	// Put stores a run report
	Put(ctx context.Context, report *model.RunReport) error

	// Latest retrieves the most recently started run report. Returns an
	// error wrapping the backend's ErrNotFound when no run exists yet.
	Latest(ctx context.Context) (*model.RunReport, error)

	// List retrieves up to limit run reports, most recent first
	List(ctx context.Context, limit int) ([]*model.RunReport, error)
}
