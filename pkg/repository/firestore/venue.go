package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type venueRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newVenueRepository(client *firestore.Client) *venueRepository {
	return &venueRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *venueRepository) collection(name string) string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_" + name
	}
	return name
}

// venueToData flattens a document into the Firestore field map. The source
// fields are stored at the top level alongside the derived hash and vector,
// so the stored shape mirrors the fetched record.
func venueToData(doc *model.Document) map[string]any {
	data := make(map[string]any, len(doc.Fields)+2)
	for k, v := range doc.Fields {
		data[k] = v
	}
	data[model.FieldHash] = doc.Hash
	data[model.FieldVector] = firestore.Vector32(doc.Vector)
	return data
}

// venueToModel rebuilds a document from the raw Firestore field map
func venueToModel(id string, data map[string]any) *model.Document {
	doc := &model.Document{
		ID:     id,
		Fields: make(map[string]any, len(data)),
	}
	for k, v := range data {
		switch k {
		case model.FieldHash:
			if s, ok := v.(string); ok {
				doc.Hash = s
			}
		case model.FieldVector:
			doc.Vector = coerceVector(v)
		default:
			doc.Fields[k] = v
		}
	}
	return doc
}

// coerceVector normalizes the decoded vector value. The client returns
// []float32 for Vector32 fields, but older documents may decode as []float64
// or []any.
func coerceVector(v any) []float32 {
	switch vec := v.(type) {
	case []float32:
		return vec
	case firestore.Vector32:
		return []float32(vec)
	case []float64:
		out := make([]float32, len(vec))
		for i, f := range vec {
			out[i] = float32(f)
		}
		return out
	case []any:
		out := make([]float32, 0, len(vec))
		for _, item := range vec {
			if f, ok := item.(float64); ok {
				out = append(out, float32(f))
			}
		}
		return out
	default:
		return nil
	}
}

func (r *venueRepository) Get(ctx context.Context, collection, id string) (*model.Document, error) {
	docRef := r.client.Collection(r.collection(collection)).Doc(id)
	snapshot, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "venue document not found",
				goerr.V("collection", collection), goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get venue document",
			goerr.V("collection", collection), goerr.V("id", id))
	}

	return venueToModel(snapshot.Ref.ID, snapshot.Data()), nil
}

func (r *venueRepository) Upsert(ctx context.Context, collection string, doc *model.Document) error {
	if doc.ID == "" {
		return goerr.New("venue document ID is required", goerr.V("collection", collection))
	}

	docRef := r.client.Collection(r.collection(collection)).Doc(doc.ID)
	if _, err := docRef.Set(ctx, venueToData(doc)); err != nil {
		return goerr.Wrap(err, "failed to upsert venue document",
			goerr.V("collection", collection), goerr.V("id", doc.ID))
	}

	return nil
}

func (r *venueRepository) List(ctx context.Context, collection string) ([]*model.Document, error) {
	iter := r.client.Collection(r.collection(collection)).Documents(ctx)
	defer iter.Stop()

	var docs []*model.Document
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate venue documents",
				goerr.V("collection", collection))
		}

		docs = append(docs, venueToModel(snapshot.Ref.ID, snapshot.Data()))
	}

	return docs, nil
}

func (r *venueRepository) FindNearest(ctx context.Context, collection string, vector []float32, limit int) ([]*model.Document, error) {
	query := r.client.Collection(r.collection(collection)).
		FindNearest(model.FieldVector, firestore.Vector32(vector), limit, firestore.DistanceMeasureCosine, nil)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []*model.Document
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to search venue documents",
				goerr.V("collection", collection))
		}

		docs = append(docs, venueToModel(snapshot.Ref.ID, snapshot.Data()))
	}

	return docs, nil
}
