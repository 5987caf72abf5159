package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/venuescope/venuesync/pkg/domain/model"
)

type syncRunRepository struct {
	mu   sync.RWMutex
	runs map[model.RunID]*model.RunReport
}

func newSyncRunRepository() *syncRunRepository {
	return &syncRunRepository{
		runs: make(map[model.RunID]*model.RunReport),
	}
}

func copyRunReport(report *model.RunReport) *model.RunReport {
	copied := &model.RunReport{
		ID:         report.ID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
	}
	if report.Sources != nil {
		copied.Sources = make([]model.SourceReport, len(report.Sources))
		copy(copied.Sources, report.Sources)
	}
	return copied
}

func (r *syncRunRepository) Put(ctx context.Context, report *model.RunReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ID == "" {
		report.ID = model.NewRunID()
	}
	r.runs[report.ID] = copyRunReport(report)

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
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]*model.RunReport, 0, len(r.runs))
	for _, report := range r.runs {
		reports = append(reports, copyRunReport(report))
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}
