package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestSourcesConfigure(t *testing.T) {
	t.Run("builds sources from URL flags with default collections", func(t *testing.T) {
		s := &Sources{
			conferenceURL: "https://api.example.com/conferences",
			journalURL:    "https://api.example.com/journals",
		}

		sources, err := s.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, sources).Length(2).Required()
		gt.Value(t, sources[0].Type).Equal(types.VenueTypeConference)
		gt.Value(t, sources[0].Collection).Equal("conference")
		gt.Value(t, sources[1].Type).Equal(types.VenueTypeJournal)
		gt.Value(t, sources[1].Collection).Equal("journal")
	})

	t.Run("loads additional sources from a TOML file", func(t *testing.T) {
		path := writeSourcesFile(t, `
[[source]]
type = "conference"
url = "https://api.example.com/workshops"
collection = "workshop_conference"
`)
		s := &Sources{
			journalURL:  "https://api.example.com/journals",
			sourcesFile: path,
		}

		sources, err := s.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, sources).Length(2).Required()
		gt.Value(t, sources[1].Collection).Equal("workshop_conference")
		gt.Value(t, sources[1].Type).Equal(types.VenueTypeConference)
	})

	t.Run("fails when nothing is configured", func(t *testing.T) {
		s := &Sources{}
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("rejects duplicate collections", func(t *testing.T) {
		path := writeSourcesFile(t, `
[[source]]
type = "conference"
url = "https://api.example.com/other"
collection = "conference"
`)
		s := &Sources{
			conferenceURL: "https://api.example.com/conferences",
			sourcesFile:   path,
		}

		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("rejects an unknown venue type in the file", func(t *testing.T) {
		path := writeSourcesFile(t, `
[[source]]
type = "workshop"
url = "https://api.example.com/workshops"
`)
		s := &Sources{sourcesFile: path}

		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("rejects a non-HTTP URL", func(t *testing.T) {
		s := &Sources{conferenceURL: "ftp://example.com/conferences"}
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("fails on a malformed TOML file", func(t *testing.T) {
		path := writeSourcesFile(t, `[[source`)
		s := &Sources{sourcesFile: path}
		_, err := s.Configure()
		gt.Error(t, err)
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		s := &Sources{sourcesFile: "/nonexistent/sources.toml"}
		_, err := s.Configure()
		gt.Error(t, err)
	})
}
