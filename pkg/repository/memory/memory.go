package memory

import (
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = interfaces.ErrNotFound

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	venue   *venueRepository
	syncRun *syncRunRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		venue:   newVenueRepository(),
		syncRun: newSyncRunRepository(),
	}
}

func (m *Memory) Venue() interfaces.VenueRepository {
	return m.venue
}

func (m *Memory) SyncRun() interfaces.SyncRunRepository {
	return m.syncRun
}

func (m *Memory) Close() error {
	return nil
}
