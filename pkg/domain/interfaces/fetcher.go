package interfaces

import (
	"context"

	"github.com/venuescope/venuesync/pkg/domain/model"
)

// Fetcher retrieves a full record batch from an external source URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]model.SourceRecord, error)
}
