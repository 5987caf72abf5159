package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/venuescope/venuesync/pkg/domain/types"
)

// RunID is a UUID-based identifier for a sync run
type RunID string

// NewRunID generates a new UUID v4 RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// ImportSummary aggregates the per-record classification of one source import.
type ImportSummary struct {
	Upserted int `json:"upserted"`
	Modified int `json:"modified"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Total returns the number of records processed
func (s ImportSummary) Total() int {
	return s.Upserted + s.Modified + s.Skipped + s.Failed
}

// SourceReport is the outcome of importing one source within a run. Error is
// non-empty when the whole source import failed (e.g. fetch or parse error);
// the summary then reflects whatever was processed before the failure.
type SourceReport struct {
	Type       types.VenueType `json:"type"`
	URL        string          `json:"url"`
	Collection string          `json:"collection"`
	Summary    ImportSummary   `json:"summary"`
	Error      string          `json:"error,omitempty"`
}

// RunReport records one full pipeline run across all configured sources.
type RunReport struct {
	ID         RunID          `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Sources    []SourceReport `json:"sources"`
}

// Succeeded reports whether every source import completed without a
// source-level error.
func (r *RunReport) Succeeded() bool {
	for _, src := range r.Sources {
		if src.Error != "" {
			return false
		}
	}
	return true
}
