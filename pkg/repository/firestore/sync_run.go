package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type runDocument struct {
	ID         string         `firestore:"id"`
	StartedAt  time.Time      `firestore:"started_at"`
	FinishedAt time.Time      `firestore:"finished_at"`
	Sources    []sourceReport `firestore:"sources"`
}

type sourceReport struct {
	Type       string `firestore:"type"`
	URL        string `firestore:"url"`
	Collection string `firestore:"collection"`
	Upserted   int    `firestore:"upserted"`
	Modified   int    `firestore:"modified"`
	Skipped    int    `firestore:"skipped"`
	Failed     int    `firestore:"failed"`
	Error      string `firestore:"error,omitempty"`
}

type syncRunRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSyncRunRepository(client *firestore.Client) *syncRunRepository {
	return &syncRunRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *syncRunRepository) runsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_sync_runs"
	}
	return "sync_runs"
}

func runToDocument(report *model.RunReport) *runDocument {
	doc := &runDocument{
		ID:         string(report.ID),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Sources:    make([]sourceReport, len(report.Sources)),
	}
	for i, src := range report.Sources {
		doc.Sources[i] = sourceReport{
			Type:       string(src.Type),
			URL:        src.URL,
			Collection: src.Collection,
			Upserted:   src.Summary.Upserted,
			Modified:   src.Summary.Modified,
			Skipped:    src.Summary.Skipped,
			Failed:     src.Summary.Failed,
			Error:      src.Error,
		}
	}
	return doc
}

func runToModel(doc *runDocument) *model.RunReport {
	report := &model.RunReport{
		ID:         model.RunID(doc.ID),
		StartedAt:  doc.StartedAt,
		FinishedAt: doc.FinishedAt,
		Sources:    make([]model.SourceReport, len(doc.Sources)),
	}
	for i, src := range doc.Sources {
		report.Sources[i] = model.SourceReport{
			Type:       types.VenueType(src.Type),
			URL:        src.URL,
			Collection: src.Collection,
			Summary: model.ImportSummary{
				Upserted: src.Upserted,
				Modified: src.Modified,
				Skipped:  src.Skipped,
				Failed:   src.Failed,
			},
			Error: src.Error,
		}
	}
	return report
}

func (r *syncRunRepository) Put(ctx context.Context, report *model.RunReport) error {
	if report.ID == "" {
		report.ID = model.NewRunID()
	}

	docRef := r.client.Collection(r.runsCollection()).Doc(string(report.ID))
	if _, err := docRef.Set(ctx, runToDocument(report)); err != nil {
		return goerr.Wrap(err, "failed to put run report", goerr.V("id", report.ID))
	}

	return nil
}

func (r *syncRunRepository) Latest(ctx context.Context) (*model.RunReport, error) {
	reports, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, goerr.Wrap(ErrNotFound, "no run reports")
	}
	return reports[0], nil
}

func (r *syncRunRepository) List(ctx context.Context, limit int) ([]*model.RunReport, error) {
	iter := r.client.Collection(r.runsCollection()).
		OrderBy("started_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var reports []*model.RunReport
	for {
		snapshot, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate run reports")
		}

		var doc runDocument
		if err := snapshot.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal run report")
		}

		reports = append(reports, runToModel(&doc))
	}

	return reports, nil
}
