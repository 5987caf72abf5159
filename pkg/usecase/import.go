package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/utils/logging"
)

// progressInterval controls how often per-record progress is logged
const progressInterval = 50

// ImportUseCase synchronizes external venue records into the document store
type ImportUseCase struct {
	repo     interfaces.Repository
	embedder interfaces.Embedder
	fetcher  interfaces.Fetcher
}

func NewImportUseCase(repo interfaces.Repository, embedder interfaces.Embedder, fetcher interfaces.Fetcher) *ImportUseCase {
	return &ImportUseCase{
		repo:     repo,
		embedder: embedder,
		fetcher:  fetcher,
	}
}

// recordClass is the per-record outcome classification
type recordClass int

const (
	classUpserted recordClass = iota
	classModified
	classSkipped
	classFailed
)

// ImportSource fetches the full batch for one source and synchronizes each
// record: unchanged records (by content hash) are skipped, new or changed
// records are embedded and upserted. Per-record failures are counted and do
// not abort the batch; only a fetch or parse failure aborts the source.
func (uc *ImportUseCase) ImportSource(ctx context.Context, src model.SyncSource) (*model.ImportSummary, error) {
	logger := logging.From(ctx)

	if err := src.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid sync source")
	}

	records, err := uc.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch source batch",
			goerr.V("type", src.Type), goerr.V("url", src.URL))
	}

	logger.Info("Starting source import",
		"type", src.Type.String(),
		"collection", src.Collection,
		"records", len(records))

	summary := &model.ImportSummary{}
	for i, record := range records {
		class, id := uc.importRecord(ctx, src, record)
		switch class {
		case classUpserted:
			summary.Upserted++
		case classModified:
			summary.Modified++
		case classSkipped:
			summary.Skipped++
		case classFailed:
			summary.Failed++
		}

		if (i+1)%progressInterval == 0 || i+1 == len(records) {
			logger.Info("Import progress",
				"type", src.Type.String(),
				"processed", i+1,
				"total", len(records),
				"percent", (i+1)*100/len(records),
				"last", id)
		}
	}

	return summary, nil
}

// importRecord processes one record in isolation. It never returns an error:
// any failure is logged and classified as failed so the batch keeps going.
func (uc *ImportUseCase) importRecord(ctx context.Context, src model.SyncSource, record model.SourceRecord) (recordClass, string) {
	logger := logging.From(ctx)

	id, err := record.Identifier(src.Type)
	if err != nil {
		logger.Warn("Skipping record without identifier",
			"type", src.Type.String(), "error", err.Error())
		return classFailed, ""
	}

	hash := record.ContentHash()

	existing, err := uc.repo.Venue().Get(ctx, src.Collection, id)
	switch {
	case err == nil:
		if existing.Hash == hash {
			return classSkipped, id
		}
	case errors.Is(err, interfaces.ErrNotFound):
		existing = nil
	default:
		logger.Error("Failed to look up existing document",
			"collection", src.Collection, "id", id, "error", err.Error())
		return classFailed, id
	}

	vector, err := uc.embedder.Embed(ctx, record.ProjectText(src.Type))
	if err != nil {
		// Embedding failure is not fatal: the record is still stored, with
		// an empty vector, and picks up an embedding on a later run once the
		// hash changes or the document is re-imported manually.
		logger.Warn("Failed to generate embedding, storing empty vector",
			"collection", src.Collection, "id", id, "error", err.Error())
		vector = []float32{}
	}

	doc := model.NewDocument(id, record, hash, vector)
	if err := uc.repo.Venue().Upsert(ctx, src.Collection, doc); err != nil {
		logger.Error("Failed to upsert document",
			"collection", src.Collection, "id", id, "error", err.Error())
		return classFailed, id
	}

	if existing == nil {
		return classUpserted, id
	}
	return classModified, id
}

// RunOnce imports every configured source sequentially and persists the run
// report. A source-level failure is recorded in the report and does not stop
// the remaining sources.
func (uc *ImportUseCase) RunOnce(ctx context.Context, sources []model.SyncSource) (*model.RunReport, error) {
	logger := logging.From(ctx)

	report := &model.RunReport{
		ID:        model.NewRunID(),
		StartedAt: time.Now().UTC(),
	}

	for _, src := range sources {
		srcReport := model.SourceReport{
			Type:       src.Type,
			URL:        src.URL,
			Collection: src.Collection,
		}

		summary, err := uc.ImportSource(ctx, src)
		if err != nil {
			logger.Error("Source import failed",
				"type", src.Type.String(), "url", src.URL, "error", err.Error())
			srcReport.Error = err.Error()
		} else {
			srcReport.Summary = *summary
			logger.Info("Source import completed",
				"type", src.Type.String(),
				"upserted", summary.Upserted,
				"modified", summary.Modified,
				"skipped", summary.Skipped,
				"failed", summary.Failed)
		}

		report.Sources = append(report.Sources, srcReport)
	}

	report.FinishedAt = time.Now().UTC()

	if err := uc.repo.SyncRun().Put(ctx, report); err != nil {
		return report, goerr.Wrap(err, "failed to persist run report", goerr.V("runID", report.ID))
	}

	return report, nil
}

// LatestRun returns the most recent run report
func (uc *UseCases) LatestRun(ctx context.Context) (*model.RunReport, error) {
	return uc.repo.SyncRun().Latest(ctx)
}

// ListRuns returns up to limit run reports, most recent first
func (uc *UseCases) ListRuns(ctx context.Context, limit int) ([]*model.RunReport, error) {
	return uc.repo.SyncRun().List(ctx, limit)
}
