package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

func TestContentHash(t *testing.T) {
	t.Run("same content yields same hash", func(t *testing.T) {
		a := model.SourceRecord{
			"id_conference": "c1",
			"name":          "ICSE",
			"acronym":       "ICSE",
			"topics":        "SE",
		}
		b := model.SourceRecord{
			"topics":        "SE",
			"acronym":       "ICSE",
			"name":          "ICSE",
			"id_conference": "c1",
		}

		gt.Value(t, a.ContentHash()).Equal(b.ContentHash())
	})

	t.Run("changed content yields different hash", func(t *testing.T) {
		a := model.SourceRecord{"id_conference": "c1", "topics": "SE"}
		b := model.SourceRecord{"id_conference": "c1", "topics": "Software Engineering"}

		gt.Value(t, a.ContentHash()).NotEqual(b.ContentHash())
	})

	t.Run("vector and hash fields are excluded", func(t *testing.T) {
		plain := model.SourceRecord{"id_journal": "j1", "title": "TOSEM"}
		decorated := model.SourceRecord{
			"id_journal": "j1",
			"title":      "TOSEM",
			"hash":       "stale-fingerprint",
			"vector":     []any{0.1, 0.2, 0.3},
		}

		gt.Value(t, plain.ContentHash()).Equal(decorated.ContentHash())
	})

	t.Run("nested values are hashed", func(t *testing.T) {
		a := model.SourceRecord{"id_journal": "j1", "meta": map[string]any{"rank": "A"}}
		b := model.SourceRecord{"id_journal": "j1", "meta": map[string]any{"rank": "B"}}

		gt.Value(t, a.ContentHash()).NotEqual(b.ContentHash())
	})
}

func TestIdentifier(t *testing.T) {
	t.Run("conference uses id_conference", func(t *testing.T) {
		record := model.SourceRecord{"id_conference": "c1", "id_journal": "wrong"}

		id, err := record.Identifier(types.VenueTypeConference)
		gt.NoError(t, err)
		gt.Value(t, id).Equal("c1")
	})

	t.Run("journal uses id_journal", func(t *testing.T) {
		record := model.SourceRecord{"id_journal": "j1"}

		id, err := record.Identifier(types.VenueTypeJournal)
		gt.NoError(t, err)
		gt.Value(t, id).Equal("j1")
	})

	t.Run("numeric identifier is stringified", func(t *testing.T) {
		record := model.SourceRecord{"id_conference": float64(42)}

		id, err := record.Identifier(types.VenueTypeConference)
		gt.NoError(t, err)
		gt.Value(t, id).Equal("42")
	})

	t.Run("missing identifier returns error", func(t *testing.T) {
		record := model.SourceRecord{"name": "ICSE"}

		_, err := record.Identifier(types.VenueTypeConference)
		gt.Error(t, err).Is(model.ErrMissingIdentifier)
	})

	t.Run("blank identifier returns error", func(t *testing.T) {
		record := model.SourceRecord{"id_journal": "   "}

		_, err := record.Identifier(types.VenueTypeJournal)
		gt.Error(t, err).Is(model.ErrMissingIdentifier)
	})
}

func TestProjectText(t *testing.T) {
	t.Run("conference projection", func(t *testing.T) {
		record := model.SourceRecord{
			"id_conference": "c1",
			"name":          "International Conference on Software Engineering",
			"acronym":       "ICSE",
			"topics":        "SE",
		}

		text := record.ProjectText(types.VenueTypeConference)
		gt.Value(t, text).Equal("International Conference on Software Engineering ICSE SE")
	})

	t.Run("journal projection", func(t *testing.T) {
		record := model.SourceRecord{
			"id_journal": "j1",
			"title":      "TOSEM",
			"categories": "Software",
			"areas":      "Engineering",
		}

		text := record.ProjectText(types.VenueTypeJournal)
		gt.Value(t, text).Equal("TOSEM Software Engineering")
	})

	t.Run("missing fields are treated as empty", func(t *testing.T) {
		record := model.SourceRecord{"name": "  ICSE  "}

		text := record.ProjectText(types.VenueTypeConference)
		gt.Value(t, text).Equal("ICSE")
	})

	t.Run("list fields are space joined", func(t *testing.T) {
		record := model.SourceRecord{
			"title":      "TOSEM",
			"categories": []any{"Software", "Systems"},
		}

		text := record.ProjectText(types.VenueTypeJournal)
		gt.Value(t, text).Equal("TOSEM Software Systems")
	})

	t.Run("empty record projects to empty text", func(t *testing.T) {
		record := model.SourceRecord{}

		gt.Value(t, record.ProjectText(types.VenueTypeConference)).Equal("")
	})
}

func TestNewDocument(t *testing.T) {
	t.Run("derived fields are stripped from fields", func(t *testing.T) {
		record := model.SourceRecord{
			"id_conference": "c1",
			"name":          "ICSE",
			"hash":          "stale",
			"vector":        []any{0.5},
		}

		doc := model.NewDocument("c1", record, "h1", []float32{0.1})

		gt.Value(t, doc.ID).Equal("c1")
		gt.Value(t, doc.Hash).Equal("h1")
		gt.Array(t, doc.Vector).Length(1)
		gt.Value(t, doc.Fields["name"]).Equal("ICSE")
		_, hasHash := doc.Fields["hash"]
		gt.Bool(t, hasHash).False()
		_, hasVector := doc.Fields["vector"]
		gt.Bool(t, hasVector).False()
	})

	t.Run("clone is independent", func(t *testing.T) {
		doc := model.NewDocument("c1", model.SourceRecord{"name": "ICSE"}, "h1", []float32{0.1, 0.2})

		clone := doc.Clone()
		clone.Fields["name"] = "other"
		clone.Vector[0] = 9

		gt.Value(t, doc.Fields["name"]).Equal("ICSE")
		gt.Value(t, doc.Vector[0]).Equal(float32(0.1))
	})
}
