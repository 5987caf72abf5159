package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

// SyncSource describes one external data source to synchronize: where to
// fetch the record batch from and which collection to write it into.
type SyncSource struct {
	Type       types.VenueType
	URL        string
	Collection string
}

// Validate checks that the source is usable
func (s *SyncSource) Validate() error {
	if err := s.Type.Validate(); err != nil {
		return goerr.Wrap(err, "invalid source type")
	}
	if strings.TrimSpace(s.URL) == "" {
		return goerr.New("source URL is required", goerr.V("type", s.Type))
	}
	if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
		return goerr.New("source URL must be http or https", goerr.V("url", s.URL))
	}
	if s.Collection == "" {
		return goerr.New("source collection is required", goerr.V("type", s.Type))
	}
	return nil
}

// Normalize fills defaulted fields in place
func (s *SyncSource) Normalize() {
	if s.Collection == "" {
		s.Collection = s.Type.DefaultCollection()
	}
}
