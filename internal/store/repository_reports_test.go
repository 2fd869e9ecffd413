package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/models"
)

func newTestReportRepo(t *testing.T) (*reportRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &reportRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func reportRows(reports ...models.Report) *sqlmock.Rows {
	rows := sqlmock.NewRows(reportColumns)
	for _, report := range reports {
		var description, photoURL, address any
		var repairCost, reportedAt any
		if report.Description != nil {
			description = *report.Description
		}
		if report.PhotoURL != nil {
			photoURL = *report.PhotoURL
		}
		if report.Address != nil {
			address = *report.Address
		}
		if report.RepairCost != nil {
			repairCost = *report.RepairCost
		}
		if report.ReportedAt != nil {
			reportedAt = *report.ReportedAt
		}
		rows.AddRow(
			report.ID, report.Category, report.Status, description,
			report.Latitude, report.Longitude, repairCost, reportedAt,
			photoURL, address, report.ReporterID,
		)
	}
	return rows
}

func TestReportsGetAll_Success(t *testing.T) {
	repo, mock, db := newTestReportRepo(t)
	defer db.Close()

	desc := "deep pothole near the bus stop"
	cost := 1500.0
	reportedAt := int64(1719830000000)

	stored := models.Report{
		ID:          "r-1",
		Category:    "pothole",
		Status:      "submitted",
		Description: &desc,
		Latitude:    55.751244,
		Longitude:   37.618423,
		RepairCost:  &cost,
		ReportedAt:  &reportedAt,
		ReporterID:  "acc-1",
	}

	mock.ExpectQuery("SELECT (.+) FROM reports").
		WillReturnRows(reportRows(stored))

	reports, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	got := reports[0]
	if got.ID != stored.ID || got.Category != stored.Category {
		t.Errorf("unexpected report: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("expected description %q, got %v", desc, got.Description)
	}
	if got.RepairCost == nil || *got.RepairCost != cost {
		t.Errorf("expected repair cost %v, got %v", cost, got.RepairCost)
	}
	if got.ReportedAt == nil || *got.ReportedAt != reportedAt {
		t.Errorf("expected reported at %v, got %v", reportedAt, got.ReportedAt)
	}
}

func TestReportsGetAll_NullOptionalFieldsStayNil(t *testing.T) {
	repo, mock, db := newTestReportRepo(t)
	defer db.Close()

	stored := models.Report{
		ID:         "r-2",
		Category:   "streetlight",
		Status:     "in_progress",
		Latitude:   55.0,
		Longitude:  37.0,
		ReporterID: "acc-2",
	}

	mock.ExpectQuery("SELECT (.+) FROM reports").
		WillReturnRows(reportRows(stored))

	reports, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	got := reports[0]
	if got.Description != nil || got.RepairCost != nil || got.ReportedAt != nil ||
		got.PhotoURL != nil || got.Address != nil {
		t.Errorf("expected optional fields to stay nil, got %+v", got)
	}
}

func TestReportsGetFiltered_AppliesFilters(t *testing.T) {
	repo, mock, db := newTestReportRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM reports WHERE category = (.+) AND status = (.+)").
		WithArgs("pothole", "submitted").
		WillReturnRows(reportRows())

	reports, err := repo.GetFiltered(context.Background(), "pothole", "submitted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected empty result, got %d reports", len(reports))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReportsReplaceAll_DeletesThenInserts(t *testing.T) {
	repo, mock, db := newTestReportRepo(t)
	defer db.Close()

	report := models.Report{
		ID:         "r-1",
		Category:   "pothole",
		Status:     "submitted",
		Latitude:   55.751244,
		Longitude:  37.618423,
		ReporterID: "acc-1",
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reports").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO reports").
		WithArgs(
			report.ID, report.Category, report.Status, report.Description,
			report.Latitude, report.Longitude, report.RepairCost, report.ReportedAt,
			report.PhotoURL, report.Address, report.ReporterID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceAll(context.Background(), []models.Report{report}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReportsReplaceAll_InsertErrorRollsBack(t *testing.T) {
	repo, mock, db := newTestReportRepo(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM reports").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO reports").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []models.Report{{ID: "r-1"}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
