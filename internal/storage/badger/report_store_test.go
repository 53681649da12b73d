package badger

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/config"
	"github.com/ivywealth/ivy-portal/internal/models"
)

func setupTestDB(t *testing.T) (*BadgerDB, func()) {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	cfg := &config.BadgerConfig{Path: dir}
	db, err := NewBadgerDB(logger, cfg)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, cleanup
}

func testReport(clientID, name string, at time.Time) *models.StoredReport {
	return &models.StoredReport{
		ClientID:    clientID,
		ClientName:  name,
		GeneratedAt: at,
		State: models.FinalState{
			ClientID:    clientID,
			FinalReport: "## Executive Summary for " + name,
		},
	}
}

func TestReportStore_SaveAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())
	ctx := context.Background()

	if err := store.Save(ctx, testReport("CLT-001", "Sarah Chen", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "CLT-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ClientName != "Sarah Chen" {
		t.Errorf("expected Sarah Chen, got %s", got.ClientName)
	}
	if got.State.FinalReport == "" {
		t.Error("stored state lost its report body")
	}
}

func TestReportStore_GetNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())

	_, err := store.Get(context.Background(), "CLT-404")
	if err == nil {
		t.Error("expected error for missing report, got nil")
	}
}

func TestReportStore_SaveReplacesDraft(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())
	ctx := context.Background()

	first := testReport("CLT-001", "Sarah Chen", time.Now().Add(-time.Hour))
	first.State.FinalReport = "old draft"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := testReport("CLT-001", "Sarah Chen", time.Now())
	second.State.FinalReport = "new draft"
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save (replace) failed: %v", err)
	}

	got, err := store.Get(ctx, "CLT-001")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.State.FinalReport != "new draft" {
		t.Errorf("expected new draft, got %q", got.State.FinalReport)
	}
}

func TestReportStore_SaveMissingClientID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())

	err := store.Save(context.Background(), &models.StoredReport{ClientName: "Nobody"})
	if err == nil {
		t.Error("expected error for missing client id")
	}
}

func TestReportStore_Delete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())
	ctx := context.Background()

	if err := store.Save(ctx, testReport("CLT-001", "Sarah Chen", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "CLT-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "CLT-001"); err == nil {
		t.Error("expected error after delete, got nil")
	}

	// Deleting again should not error
	if err := store.Delete(ctx, "CLT-001"); err != nil {
		t.Errorf("Delete nonexistent report should not error: %v", err)
	}
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())
	ctx := context.Background()

	base := time.Now().Add(-24 * time.Hour)
	store.Save(ctx, testReport("CLT-001", "Sarah Chen", base))
	store.Save(ctx, testReport("CLT-002", "Marcus Webb", base.Add(2*time.Hour)))
	store.Save(ctx, testReport("CLT-003", "Priya Desai", base.Add(time.Hour)))

	reports, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].ClientID != "CLT-002" || reports[1].ClientID != "CLT-003" || reports[2].ClientID != "CLT-001" {
		t.Errorf("reports not newest first: %s, %s, %s",
			reports[0].ClientID, reports[1].ClientID, reports[2].ClientID)
	}
}

func TestReportStore_ListEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewReportStore(db, common.NewSilentLogger())

	reports, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List on empty store failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected 0 reports, got %d", len(reports))
	}
}
