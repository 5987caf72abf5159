package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/model"
)

type venueRepository struct {
	mu          sync.RWMutex
	collections map[string]map[string]*model.Document
}

func newVenueRepository() *venueRepository {
	return &venueRepository{
		collections: make(map[string]map[string]*model.Document),
	}
}

func (r *venueRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.collections[collection][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "venue document not found",
			goerr.V("collection", collection), goerr.V("id", id))
	}

	return doc.Clone(), nil
}

func (r *venueRepository) Upsert(ctx context.Context, collection string, doc *model.Document) error {
	if doc.ID == "" {
		return goerr.New("venue document ID is required", goerr.V("collection", collection))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.collections[collection] == nil {
		r.collections[collection] = make(map[string]*model.Document)
	}
	r.collections[collection][doc.ID] = doc.Clone()

	return nil
}

func (r *venueRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]*model.Document, 0, len(r.collections[collection]))
	for _, doc := range r.collections[collection] {
		docs = append(docs, doc.Clone())
	}

	return docs, nil
}

func (r *venueRepository) FindNearest(ctx context.Context, collection string, vector []float32, limit int) ([]*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		doc   *model.Document
		score float64
	}

	var candidates []scored
	for _, doc := range r.collections[collection] {
		if len(doc.Vector) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			doc:   doc.Clone(),
			score: cosineSimilarity(vector, doc.Vector),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	docs := make([]*model.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = c.doc
	}

	return docs, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
