package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
	"github.com/venuescope/venuesync/pkg/service/embedding"
)

// Gemini holds configuration for the Gemini embedding client
type Gemini struct {
	projectID string
	location  string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API (required)",
			Sources:     cli.EnvVars("VENUESYNC_GEMINI_PROJECT"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("VENUESYNC_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// LogAttrs returns log attributes for the Gemini configuration
func (g *Gemini) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("project_id", g.projectID),
		slog.String("location", g.location),
	}
}

// Configure creates the embedding service. The underlying Gemini client is
// only created on the first embedding request, so a misconfigured project
// surfaces as a per-run warning rather than a startup failure.
func (g *Gemini) Configure(ctx context.Context) (*embedding.Service, error) {
	if g.projectID == "" {
		return nil, goerr.New("gemini-project is required")
	}

	projectID, location := g.projectID, g.location
	factory := func(ctx context.Context) (gollem.LLMClient, error) {
		client, err := gemini.New(ctx, projectID, location)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil
	}

	return embedding.New(factory)
}
