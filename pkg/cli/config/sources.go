package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

// Sources holds CLI flags for the sync source configuration. The two
// built-in venue types are configured with URL flags; additional sources can
// be declared in a TOML file.
type Sources struct {
	conferenceURL string
	journalURL    string
	sourcesFile   string
}

// sourcesFileConfig is the TOML shape of the optional sources file
type sourcesFileConfig struct {
	Sources []sourceEntry `toml:"source"`
}

type sourceEntry struct {
	Type       string `toml:"type"`
	URL        string `toml:"url"`
	Collection string `toml:"collection"`
}

// Flags returns CLI flags for source configuration
func (s *Sources) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "conference-url",
			Usage:       "Fetch URL for conference records",
			Sources:     cli.EnvVars("VENUESYNC_CONFERENCE_URL"),
			Destination: &s.conferenceURL,
		},
		&cli.StringFlag{
			Name:        "journal-url",
			Usage:       "Fetch URL for journal records",
			Sources:     cli.EnvVars("VENUESYNC_JOURNAL_URL"),
			Destination: &s.journalURL,
		},
		&cli.StringFlag{
			Name:        "sources",
			Usage:       "Path to a TOML file declaring additional sync sources",
			Sources:     cli.EnvVars("VENUESYNC_SOURCES"),
			Destination: &s.sourcesFile,
		},
	}
}

// Configure builds and validates the source list
func (s *Sources) Configure() ([]model.SyncSource, error) {
	var sources []model.SyncSource

	if s.conferenceURL != "" {
		sources = append(sources, model.SyncSource{
			Type: types.VenueTypeConference,
			URL:  s.conferenceURL,
		})
	}
	if s.journalURL != "" {
		sources = append(sources, model.SyncSource{
			Type: types.VenueTypeJournal,
			URL:  s.journalURL,
		})
	}

	if s.sourcesFile != "" {
		fromFile, err := loadSourcesFile(s.sourcesFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fromFile...)
	}

	if len(sources) == 0 {
		return nil, goerr.New("no sync sources configured: set --conference-url, --journal-url or --sources")
	}

	collections := make(map[string]bool)
	for i := range sources {
		sources[i].Normalize()
		if err := sources[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid sync source", goerr.V("index", i))
		}
		if collections[sources[i].Collection] {
			return nil, goerr.New("duplicate source collection", goerr.V("collection", sources[i].Collection))
		}
		collections[sources[i].Collection] = true
	}

	return sources, nil
}

// loadSourcesFile loads source declarations from a TOML file
func loadSourcesFile(path string) ([]model.SyncSource, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sources file", goerr.V("path", path))
	}

	var cfg sourcesFileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML sources file", goerr.V("path", path))
	}

	sources := make([]model.SyncSource, len(cfg.Sources))
	for i, entry := range cfg.Sources {
		sources[i] = model.SyncSource{
			Type:       types.VenueType(entry.Type),
			URL:        entry.URL,
			Collection: entry.Collection,
		}
	}

	return sources, nil
}
