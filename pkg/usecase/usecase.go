package usecase

import (
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/service/fetch"
)

type UseCases struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder
	fetcher  interfaces.Fetcher

	Import *ImportUseCase
	Search *SearchUseCase
}

type Option func(*UseCases)

// WithFetcher replaces the default HTTP fetcher (used by tests)
func WithFetcher(fetcher interfaces.Fetcher) Option {
	return func(uc *UseCases) {
		uc.fetcher = fetcher
	}
}

func New(repo interfaces.Repository, embedder interfaces.Embedder, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		embedder: embedder,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.fetcher == nil {
		uc.fetcher = fetch.New()
	}

	uc.Import = NewImportUseCase(repo, embedder, uc.fetcher)
	uc.Search = NewSearchUseCase(repo, embedder)

	return uc
}
