package embedding

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/model"
)

// ClientFactory builds the backing LLM client. It is invoked at most once,
// on the first embedding request.
type ClientFactory func(ctx context.Context) (gollem.LLMClient, error)

// Service generates embeddings through a gollem LLM client. The client is an
// expensive resource, so it is created lazily on first use and memoized for
// the life of the process, including across scheduled runs.
type Service struct {
	factory   ClientFactory
	dimension int

	once   sync.Once
	client gollem.LLMClient
	initEr error
}

var _ interfaces.Embedder = &Service{}

// Option is a functional option for service configuration
type Option func(*Service)

// WithDimension overrides the output vector dimension
func WithDimension(dim int) Option {
	return func(s *Service) {
		s.dimension = dim
	}
}

// New creates a new embedding service
func New(factory ClientFactory, opts ...Option) (*Service, error) {
	if factory == nil {
		return nil, goerr.New("LLM client factory is required")
	}

	s := &Service{
		factory:   factory,
		dimension: model.EmbeddingDimension,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Dimension returns the dimensionality of the output vectors
func (s *Service) Dimension() int {
	return s.dimension
}

// Embed returns the embedding of the given text
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	client, err := s.init(ctx)
	if err != nil {
		return nil, err
	}

	embeddings, err := client.GenerateEmbedding(ctx, s.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}
	if len(embeddings) == 0 {
		return nil, goerr.New("no embedding returned")
	}

	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}

	return result, nil
}

// init creates the backing client exactly once. A failed initialization is
// memoized and returned to every later call.
func (s *Service) init(ctx context.Context) (gollem.LLMClient, error) {
	s.once.Do(func() {
		client, err := s.factory(ctx)
		if err != nil {
			s.initEr = goerr.Wrap(err, "failed to initialize LLM client")
			return
		}
		if client == nil {
			s.initEr = goerr.New("LLM client factory returned nil")
			return
		}
		s.client = client
	})

	if s.initEr != nil {
		return nil, s.initEr
	}
	return s.client, nil
}
