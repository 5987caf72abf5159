package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/venuescope/venuesync/pkg/cli/config"
	"github.com/venuescope/venuesync/pkg/domain/types"
	"github.com/venuescope/venuesync/pkg/usecase"
	"github.com/venuescope/venuesync/pkg/utils/logging"
)

func cmdSearch() *cli.Command {
	var venueType string
	var limit int
	var repoCfg config.Repository
	var geminiCfg config.Gemini

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "type",
			Usage:       "Venue type to search (conference or journal)",
			Value:       "conference",
			Destination: &venueType,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of results",
			Value:       10,
			Destination: &limit,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:      "search",
		Usage:     "Semantic search over synchronized venue records",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			if query == "" {
				return goerr.New("search query argument is required")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			embedder, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding service")
			}

			uc := usecase.New(repo, embedder)

			docs, err := uc.Search.Search(ctx, types.VenueType(venueType), query, limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			for _, doc := range docs {
				if err := enc.Encode(map[string]any{"id": doc.ID, "fields": doc.Fields}); err != nil {
					return goerr.Wrap(err, "failed to print search result")
				}
			}

			return nil
		},
	}
}
