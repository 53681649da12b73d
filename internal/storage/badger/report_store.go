package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ReportStore persists the latest generated report per client.
type ReportStore struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewReportStore creates a report store backed by BadgerDB.
func NewReportStore(db *BadgerDB, logger *common.Logger) *ReportStore {
	return &ReportStore{
		db:     db,
		logger: logger,
	}
}

// Save upserts the client's report draft. A new report for the same
// client replaces the previous one.
func (s *ReportStore) Save(_ context.Context, report *models.StoredReport) error {
	if report.ClientID == "" {
		return fmt.Errorf("report missing client id")
	}
	if err := s.db.Store().Upsert(report.ClientID, report); err != nil {
		return fmt.Errorf("failed to save report for %s: %w", report.ClientID, err)
	}
	return nil
}

// Get retrieves the latest report for a client.
func (s *ReportStore) Get(_ context.Context, clientID string) (*models.StoredReport, error) {
	var report models.StoredReport
	err := s.db.Store().Get(clientID, &report)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no report for client: %s", clientID)
		}
		return nil, fmt.Errorf("failed to get report for %s: %w", clientID, err)
	}
	return &report, nil
}

// Delete removes a client's stored report.
func (s *ReportStore) Delete(_ context.Context, clientID string) error {
	err := s.db.Store().Delete(clientID, models.StoredReport{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete report for %s: %w", clientID, err)
	}
	return nil
}

// List returns all stored reports, newest first.
func (s *ReportStore) List(_ context.Context) ([]models.StoredReport, error) {
	var reports []models.StoredReport
	err := s.db.Store().Find(&reports, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	// Newest first
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].GeneratedAt.After(reports[j].GeneratedAt)
	})
	return reports, nil
}
