package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

// defaultSearchLimit bounds result sets when the caller does not specify one
const defaultSearchLimit = 10

// SearchUseCase answers semantic queries over the synchronized venue corpus
type SearchUseCase struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder
}

func NewSearchUseCase(repo interfaces.Repository, embedder interfaces.Embedder) *SearchUseCase {
	return &SearchUseCase{
		repo:     repo,
		embedder: embedder,
	}
}

// Search embeds the query text and returns the nearest venue documents of
// the given type by cosine similarity.
func (uc *SearchUseCase) Search(ctx context.Context, venueType types.VenueType, query string, limit int) ([]*model.Document, error) {
	if err := venueType.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, goerr.New("search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	vector, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to embed search query")
	}

	docs, err := uc.repo.Venue().FindNearest(ctx, venueType.DefaultCollection(), vector, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search venue documents",
			goerr.V("type", venueType))
	}

	return docs, nil
}
