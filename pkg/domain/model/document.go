package model

// EmbeddingDimension is the dimension of the embedding vector.
// Gemini text-embedding-004 uses 768 dimensions.
const EmbeddingDimension = 768

// Document is a stored venue record: the original source fields plus the
// derived content hash and embedding vector.
type Document struct {
	ID     string
	Fields map[string]any
	Hash   string
	Vector []float32
}

// NewDocument merges a source record with its derived fields. The record's
// own vector and hash entries (if any) are dropped from Fields so the stored
// copies are always the ones this pipeline computed.
func NewDocument(id string, record SourceRecord, hash string, vector []float32) *Document {
	fields := make(map[string]any, len(record))
	for k, v := range record {
		if k == FieldHash || k == FieldVector {
			continue
		}
		fields[k] = v
	}

	return &Document{
		ID:     id,
		Fields: fields,
		Hash:   hash,
		Vector: vector,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	copied := &Document{
		ID:   d.ID,
		Hash: d.Hash,
	}
	if d.Fields != nil {
		copied.Fields = make(map[string]any, len(d.Fields))
		for k, v := range d.Fields {
			copied.Fields[k] = v
		}
	}
	if d.Vector != nil {
		copied.Vector = make([]float32, len(d.Vector))
		copy(copied.Vector, d.Vector)
	}
	return copied
}
