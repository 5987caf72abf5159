package types

import "github.com/m-mizutani/goerr/v2"

// VenueType represents the category of a synchronized record
type VenueType string

const (
	VenueTypeConference VenueType = "conference"
	VenueTypeJournal    VenueType = "journal"
)

// AllVenueTypes returns all valid venue types
func AllVenueTypes() []VenueType {
	return []VenueType{
		VenueTypeConference,
		VenueTypeJournal,
	}
}

// IsValid checks if the venue type is valid
func (t VenueType) IsValid() bool {
	switch t {
	case VenueTypeConference, VenueTypeJournal:
		return true
	default:
		return false
	}
}

// Validate returns an error if the venue type is not a known type
func (t VenueType) Validate() error {
	if !t.IsValid() {
		return goerr.New("invalid venue type", goerr.V("type", string(t)))
	}
	return nil
}

// IDField returns the name of the identifier field carried by source records
// of this venue type.
func (t VenueType) IDField() string {
	switch t {
	case VenueTypeConference:
		return "id_conference"
	case VenueTypeJournal:
		return "id_journal"
	default:
		return ""
	}
}

// TextFields returns the fields projected into embeddable text, in order.
func (t VenueType) TextFields() []string {
	switch t {
	case VenueTypeConference:
		return []string{"name", "acronym", "topics"}
	case VenueTypeJournal:
		return []string{"title", "categories", "areas"}
	default:
		return nil
	}
}

// DefaultCollection returns the storage collection used for this venue type
// when no explicit collection is configured.
func (t VenueType) DefaultCollection() string {
	return string(t)
}

// String returns the string representation of the venue type
func (t VenueType) String() string {
	return string(t)
}
