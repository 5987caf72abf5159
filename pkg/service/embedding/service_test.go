package embedding_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/service/embedding"
)

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	generateEmbeddingFn func(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return nil, goerr.New("not implemented")
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	if c.generateEmbeddingFn != nil {
		return c.generateEmbeddingFn(ctx, dimension, input)
	}
	out := make([][]float64, len(input))
	for i := range input {
		vec := make([]float64, dimension)
		for j := range vec {
			vec[j] = 0.5
		}
		out[i] = vec
	}
	return out, nil
}

func TestEmbed(t *testing.T) {
	t.Run("returns vector of configured dimension", func(t *testing.T) {
		svc, err := embedding.New(func(ctx context.Context) (gollem.LLMClient, error) {
			return &mockLLMClient{}, nil
		}, embedding.WithDimension(8))
		gt.NoError(t, err).Required()

		vec, err := svc.Embed(context.Background(), "semantic search")
		gt.NoError(t, err).Required()
		gt.Array(t, vec).Length(8)
		gt.Value(t, svc.Dimension()).Equal(8)
	})

	t.Run("client is created once across calls", func(t *testing.T) {
		var created int32
		svc, err := embedding.New(func(ctx context.Context) (gollem.LLMClient, error) {
			atomic.AddInt32(&created, 1)
			return &mockLLMClient{}, nil
		}, embedding.WithDimension(4))
		gt.NoError(t, err).Required()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = svc.Embed(context.Background(), "text")
			}()
		}
		wg.Wait()

		gt.Value(t, atomic.LoadInt32(&created)).Equal(int32(1))
	})

	t.Run("factory failure is memoized", func(t *testing.T) {
		var attempts int32
		svc, err := embedding.New(func(ctx context.Context) (gollem.LLMClient, error) {
			atomic.AddInt32(&attempts, 1)
			return nil, goerr.New("no credentials")
		}, embedding.WithDimension(4))
		gt.NoError(t, err).Required()

		_, err = svc.Embed(context.Background(), "a")
		gt.Error(t, err)
		_, err = svc.Embed(context.Background(), "b")
		gt.Error(t, err)

		gt.Value(t, atomic.LoadInt32(&attempts)).Equal(int32(1))
	})

	t.Run("embedding error is propagated", func(t *testing.T) {
		svc, err := embedding.New(func(ctx context.Context) (gollem.LLMClient, error) {
			return &mockLLMClient{
				generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
					return nil, goerr.New("model unavailable")
				},
			}, nil
		}, embedding.WithDimension(4))
		gt.NoError(t, err).Required()

		_, err = svc.Embed(context.Background(), "text")
		gt.Error(t, err)
	})

	t.Run("nil factory is rejected", func(t *testing.T) {
		_, err := embedding.New(nil)
		gt.Error(t, err)
	})
}
