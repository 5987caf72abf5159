package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Venue() VenueRepository
	SyncRun() SyncRunRepository

	Close() error
}
