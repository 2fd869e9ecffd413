package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

var reportColumns = []string{
	"id", "category", "status", "description",
	"latitude", "longitude", "repair_cost", "reported_at",
	"photo_url", "address", "reporter_id",
}

type reportRepository struct {
	*DB
	logger *logger.Logger
}

func NewReportRepository(db *DB, logger *logger.Logger) ReportRepository {
	return &reportRepository{DB: db, logger: logger}
}

// ReplaceAll implements [ReportRepository]. The snapshot is overwritten in a
// single transaction so a crash mid-write never leaves a half-replaced cache.
func (r *reportRepository) ReplaceAll(ctx context.Context, reports []models.Report) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteSQL, deleteArgs, err := sq.Delete("reports").ToSql()
	if err != nil {
		return fmt.Errorf("build snapshot delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
		r.logger.Err(err).Msg("failed to clear report snapshot")
		return fmt.Errorf("clear report snapshot: %w", err)
	}

	for _, report := range reports {
		insertSQL, insertArgs, buildErr := sq.Insert("reports").
			Columns(reportColumns...).
			Values(
				report.ID, report.Category, report.Status, report.Description,
				report.Latitude, report.Longitude, report.RepairCost, report.ReportedAt,
				report.PhotoURL, report.Address, report.ReporterID,
			).
			ToSql()
		if buildErr != nil {
			return fmt.Errorf("build snapshot insert: %w", buildErr)
		}
		if _, err = tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			r.logger.Err(err).Str("report_id", report.ID).Msg("failed to insert report into snapshot")
			return fmt.Errorf("insert report %s into snapshot: %w", report.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot replace: %w", err)
	}
	return nil
}

// GetAll implements [ReportRepository].
func (r *reportRepository) GetAll(ctx context.Context) ([]models.Report, error) {
	return r.query(ctx, sq.Select(reportColumns...).From("reports").OrderBy("id"))
}

// GetFiltered implements [ReportRepository]. Empty filter values match
// everything.
func (r *reportRepository) GetFiltered(ctx context.Context, category, status string) ([]models.Report, error) {
	builder := sq.Select(reportColumns...).From("reports").OrderBy("id")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	if status != "" {
		builder = builder.Where(sq.Eq{"status": status})
	}
	return r.query(ctx, builder)
}

func (r *reportRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]models.Report, error) {
	querySQL, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build report query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, querySQL, args...)
	if err != nil {
		r.logger.Err(err).Msg("failed to query report snapshot")
		return nil, fmt.Errorf("query report snapshot: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		report, scanErr := scanReport(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		reports = append(reports, report)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report snapshot: %w", err)
	}
	return reports, nil
}

func scanReport(rows *sql.Rows) (models.Report, error) {
	var report models.Report
	var description, photoURL, address sql.NullString
	var repairCost sql.NullFloat64
	var reportedAt sql.NullInt64

	err := rows.Scan(
		&report.ID, &report.Category, &report.Status, &description,
		&report.Latitude, &report.Longitude, &repairCost, &reportedAt,
		&photoURL, &address, &report.ReporterID,
	)
	if err != nil {
		return models.Report{}, fmt.Errorf("scan report row: %w", err)
	}

	if description.Valid {
		report.Description = &description.String
	}
	if photoURL.Valid {
		report.PhotoURL = &photoURL.String
	}
	if address.Valid {
		report.Address = &address.String
	}
	if repairCost.Valid {
		report.RepairCost = &repairCost.Float64
	}
	if reportedAt.Valid {
		report.ReportedAt = &reportedAt.Int64
	}
	return report, nil
}
