package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/venuescope/venuesync/pkg/cli/config"
	"github.com/venuescope/venuesync/pkg/usecase"
	"github.com/venuescope/venuesync/pkg/utils/logging"
)

func cmdSync() *cli.Command {
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var sourcesCfg config.Sources

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, sourcesCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Run the sync pipeline once and exit",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sources, err := sourcesCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load sync sources")
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

			report, err := uc.Import.RunOnce(ctx, sources)
			if err != nil {
				return err
			}

			for _, src := range report.Sources {
				if src.Error != "" {
					logging.Default().Error("Source import failed",
						"type", src.Type.String(), "error", src.Error)
					continue
				}
				logging.Default().Info("Source import result",
					"type", src.Type.String(),
					"upserted", src.Summary.Upserted,
					"modified", src.Summary.Modified,
					"skipped", src.Summary.Skipped,
					"failed", src.Summary.Failed)
			}

			if !report.Succeeded() {
				return goerr.New("sync run finished with source failures", goerr.V("runID", report.ID))
			}
			return nil
		},
	}
}
