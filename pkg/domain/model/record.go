package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

// ErrMissingIdentifier is returned when a source record does not carry the
// identifier field of its venue type.
var ErrMissingIdentifier = goerr.New("source record has no identifier")

// Derived field names excluded from content hashing. They are written by the
// pipeline, not by the source, so hashing them would make the fingerprint
// depend on its own previous output.
const (
	FieldHash   = "hash"
	FieldVector = "vector"
)

// SourceRecord is a record as fetched from an external API. The field set
// varies by venue type, so it is kept as a generic mapping and interpreted
// through type-specific projections.
type SourceRecord map[string]any

// Identifier returns the record's primary identifier for the given venue type.
func (r SourceRecord) Identifier(t types.VenueType) (string, error) {
	field := t.IDField()
	v, ok := r[field]
	if !ok {
		return "", goerr.Wrap(ErrMissingIdentifier, "identifier field not present", goerr.V("field", field))
	}

	id := strings.TrimSpace(stringify(v))
	if id == "" {
		return "", goerr.Wrap(ErrMissingIdentifier, "identifier field is empty", goerr.V("field", field))
	}
	return id, nil
}

// ContentHash computes a deterministic fingerprint over the record's content.
// The derived vector and hash fields are excluded so that re-hashing a stored
// document yields the same fingerprint as hashing the original source record.
func (r SourceRecord) ContentHash() string {
	content := make(map[string]any, len(r))
	for k, v := range r {
		if k == FieldHash || k == FieldVector {
			continue
		}
		content[k] = v
	}

	// json.Marshal sorts map keys, which makes the digest deterministic for
	// any record shape that came out of a JSON decode.
	data, err := json.Marshal(content)
	if err != nil {
		// Records are produced by json.Unmarshal, so marshaling cannot fail
		// in practice. Fall back to the formatted value to stay total.
		data = fmt.Appendf(nil, "%v", content)
	}

	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// ProjectText builds the embeddable text projection for the given venue type:
// the type's text fields stringified, trimmed, and space-joined. Missing
// fields are treated as empty.
func (r SourceRecord) ProjectText(t types.VenueType) string {
	var parts []string
	for _, field := range t.TextFields() {
		s := strings.TrimSpace(stringify(r[field]))
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// stringify flattens a decoded JSON value into text. Arrays are joined with
// spaces so list-valued fields (e.g. topics) project naturally.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		var parts []string
		for _, item := range val {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
