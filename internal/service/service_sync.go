// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/roadwatch/roadwatch/internal/docstore"
	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/store"
	"github.com/roadwatch/roadwatch/models"
)

// collectionReports is the remote collection projected into the local cache.
const collectionReports = "reports"

type syncService struct {
	remote  docstore.Store
	reports store.ReportRepository
	logger  *logger.Logger
}

// NewSyncService builds the differential sync engine over the remote store
// and the local report snapshot.
func NewSyncService(remote docstore.Store, reports store.ReportRepository, logger *logger.Logger) SyncService {
	return &syncService{remote: remote, reports: reports, logger: logger}
}

// FetchAll implements [SyncService]. Decoding is per-field defaulting, so
// one malformed remote document degrades to a partially defaulted report,
// never a failed batch.
func (s *syncService) FetchAll(ctx context.Context) ([]models.Report, error) {
	docs, err := s.remote.GetAll(ctx, collectionReports)
	if err != nil {
		return nil, fmt.Errorf("fetch remote reports: %w", err)
	}

	reports := make([]models.Report, 0, len(docs))
	for id, doc := range docs {
		reports = append(reports, models.DecodeReport(id, doc))
	}
	sortReports(reports)

	if err = s.reports.ReplaceAll(ctx, reports); err != nil {
		return nil, fmt.Errorf("persist report snapshot: %w", err)
	}
	return reports, nil
}

// Subscribe implements [SyncService]. Change batches translate one-to-one
// into tagged diffs; the engine never retries the stream itself (the
// reconcile worker owns recovery).
func (s *syncService) Subscribe(ctx context.Context, onDiffs func([]models.ReportDiff), onError func(error)) (func(), error) {
	unsubscribe, err := s.remote.Subscribe(ctx, collectionReports,
		func(changes []docstore.Change) {
			diffs := make([]models.ReportDiff, 0, len(changes))
			for _, change := range changes {
				diff := models.ReportDiff{ID: change.Key}
				switch change.Kind {
				case docstore.ChangeRemoved:
					diff.Kind = models.DiffRemoved
				case docstore.ChangeAdded:
					diff.Kind = models.DiffAdded
					diff.Report = models.DecodeReport(change.Key, change.Doc)
				case docstore.ChangeModified:
					diff.Kind = models.DiffModified
					diff.Report = models.DecodeReport(change.Key, change.Doc)
				default:
					s.logger.Warn().Str("kind", string(change.Kind)).
						Msg("dropping change with unknown kind")
					continue
				}
				diffs = append(diffs, diff)
			}
			if len(diffs) == 0 {
				return
			}
			onDiffs(diffs)
		},
		onError,
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe to report stream: %w", err)
	}
	return unsubscribe, nil
}

// ApplyDiffs implements [SyncService]. The fold itself is pure: current is
// not mutated, batch order wins for duplicate ids, and removing an absent id
// is a no-op. The resulting snapshot overwrites the local cache.
func (s *syncService) ApplyDiffs(ctx context.Context, current map[string]models.Report, diffs []models.ReportDiff) ([]models.Report, error) {
	next := make(map[string]models.Report, len(current)+len(diffs))
	for id, report := range current {
		next[id] = report
	}

	for _, diff := range diffs {
		switch diff.Kind {
		case models.DiffRemoved:
			delete(next, diff.ID)
		case models.DiffAdded, models.DiffModified:
			next[diff.ID] = diff.Report
		}
	}

	reports := make([]models.Report, 0, len(next))
	for _, report := range next {
		reports = append(reports, report)
	}
	sortReports(reports)

	if err := s.reports.ReplaceAll(ctx, reports); err != nil {
		return nil, fmt.Errorf("persist report snapshot: %w", err)
	}
	return reports, nil
}

// CachedReports implements [SyncService].
func (s *syncService) CachedReports(ctx context.Context, category, status string) ([]models.Report, error) {
	if category == "" && status == "" {
		return s.reports.GetAll(ctx)
	}
	return s.reports.GetFiltered(ctx, category, status)
}

func sortReports(reports []models.Report) {
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID < reports[j].ID })
}
