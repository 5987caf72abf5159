package interfaces

import (
	"context"

	"github.com/venuescope/venuesync/pkg/domain/model"
)

// VenueRepository defines the interface for venue document persistence.
// Documents live in per-source collections (e.g. "conference", "journal")
// and are keyed by the record's source identifier.
type VenueRepository interface {
	// Get retrieves a document by ID. Returns an error wrapping the
	// backend's ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (*model.Document, error)

	// Upsert writes the document under its ID, replacing any existing one
	Upsert(ctx context.Context, collection string, doc *model.Document) error

	// List retrieves all documents in a collection
	List(ctx context.Context, collection string) ([]*model.Document, error)

	// FindNearest returns up to limit documents ranked by cosine similarity
	// of their embedding vector to the given vector. Documents without an
	// embedding are excluded.
	FindNearest(ctx context.Context, collection string, vector []float32, limit int) ([]*model.Document, error)
}
