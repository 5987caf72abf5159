package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

func TestVenueType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, vt := range types.AllVenueTypes() {
			gt.NoError(t, vt.Validate())
		}
	})

	t.Run("invalid type", func(t *testing.T) {
		gt.Error(t, types.VenueType("workshop").Validate())
		gt.Error(t, types.VenueType("").Validate())
	})

	t.Run("identifier fields", func(t *testing.T) {
		gt.Value(t, types.VenueTypeConference.IDField()).Equal("id_conference")
		gt.Value(t, types.VenueTypeJournal.IDField()).Equal("id_journal")
	})

	t.Run("text fields", func(t *testing.T) {
		gt.Array(t, types.VenueTypeConference.TextFields()).Equal([]string{"name", "acronym", "topics"})
		gt.Array(t, types.VenueTypeJournal.TextFields()).Equal([]string{"title", "categories", "areas"})
	})

	t.Run("default collections", func(t *testing.T) {
		gt.Value(t, types.VenueTypeConference.DefaultCollection()).Equal("conference")
		gt.Value(t, types.VenueTypeJournal.DefaultCollection()).Equal("journal")
	})
}
