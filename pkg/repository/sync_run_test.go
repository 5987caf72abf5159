package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/venuescope/venuesync/pkg/domain/interfaces"
	"github.com/venuescope/venuesync/pkg/domain/model"
	"github.com/venuescope/venuesync/pkg/domain/types"
	"github.com/venuescope/venuesync/pkg/repository/firestore"
	"github.com/venuescope/venuesync/pkg/repository/memory"
)

func runSyncRunRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Latest returns ErrNotFound when empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.SyncRun().Latest(ctx)
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Put then Latest round-trips a report", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := &model.RunReport{
			StartedAt:  time.Now().UTC().Truncate(time.Millisecond),
			FinishedAt: time.Now().UTC().Truncate(time.Millisecond),
			Sources: []model.SourceReport{
				{
					Type:       types.VenueTypeConference,
					URL:        "https://api.example.com/conferences",
					Collection: "conference",
					Summary:    model.ImportSummary{Upserted: 2, Skipped: 1},
				},
				{
					Type:       types.VenueTypeJournal,
					URL:        "https://api.example.com/journals",
					Collection: "journal",
					Error:      "fetch failed",
				},
			},
		}

		gt.NoError(t, repo.SyncRun().Put(ctx, report)).Required()
		gt.String(t, string(report.ID)).NotEqual("")

		got, err := repo.SyncRun().Latest(ctx)
		gt.NoError(t, err).Required()

		gt.Value(t, got.ID).Equal(report.ID)
		gt.Array(t, got.Sources).Length(2)
		gt.Value(t, got.Sources[0].Summary.Upserted).Equal(2)
		gt.Value(t, got.Sources[1].Error).Equal("fetch failed")
		gt.Bool(t, got.Succeeded()).False()
	})

	t.Run("List returns most recent first with limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 3; i++ {
			report := &model.RunReport{
				StartedAt:  base.Add(time.Duration(i) * time.Minute),
				FinishedAt: base.Add(time.Duration(i)*time.Minute + 30*time.Second),
			}
			gt.NoError(t, repo.SyncRun().Put(ctx, report)).Required()
		}

		reports, err := repo.SyncRun().List(ctx, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, reports).Length(2)
		gt.Bool(t, reports[0].StartedAt.After(reports[1].StartedAt)).True()
	})
}

func TestMemorySyncRunRepository(t *testing.T) {
	runSyncRunRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreSyncRunRepository(t *testing.T) {
	runSyncRunRepositoryTest(t, newFirestoreRepository)
}
