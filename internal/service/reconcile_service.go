package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/repository"
)

type chanceReconcileRepo interface {
	ListProbabilityStyle(ctx context.Context) ([]repository.ChanceRow, error)
	ListPercentageStyle(ctx context.Context) ([]repository.ChanceRow, error)
	UpdateEnrollmentChance(ctx context.Context, id string, value float64) error
}

// ScaledRow reports one reconciled value for operator review.
type ScaledRow struct {
	ID     string  `json:"id"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	Found  int         `json:"found"`
	Scaled int         `json:"scaled"`
	DryRun bool        `json:"dry_run"`
	Rows   []ScaledRow `json:"rows"`
}

// ReconcileService converts stored enrollment chances between the
// probability and percentage scales. Both directions are idempotent:
// rows already on the target scale never match the selection queries, so
// a re-run finds nothing to do.
type ReconcileService struct {
	repo   chanceReconcileRepo
	logger *zap.Logger
}

// NewReconcileService constructs the reconcile service.
func NewReconcileService(repo chanceReconcileRepo, logger *zap.Logger) *ReconcileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconcileService{repo: repo, logger: logger}
}

// ScaleToPercentage lifts every probability-style chance onto the
// percentage scale. With dryRun set, rows are reported but not written.
func (s *ReconcileService) ScaleToPercentage(ctx context.Context, dryRun bool) (*ReconcileReport, error) {
	rows, err := s.repo.ListProbabilityStyle(ctx)
	if err != nil {
		return nil, fmt.Errorf("select probability-style rows: %w", err)
	}
	report := &ReconcileReport{Found: len(rows), DryRun: dryRun}
	for _, row := range rows {
		after := repository.NormalizeChance(row.EnrollmentChance)
		report.Rows = append(report.Rows, ScaledRow{ID: row.ID, Before: row.EnrollmentChance, After: after})
		if dryRun {
			continue
		}
		if err := s.repo.UpdateEnrollmentChance(ctx, row.ID, after); err != nil {
			return report, fmt.Errorf("scale chance for %s: %w", row.ID, err)
		}
		report.Scaled++
	}
	s.logger.Info("enrollment chance scale-up complete",
		zap.Int("found", report.Found),
		zap.Int("scaled", report.Scaled),
		zap.Bool("dry_run", dryRun))
	return report, nil
}

// ScaleToProbability rolls percentage-style chances back to the
// probability scale. Only values in (1.0, 100.0] are touched: anything
// at or below 1.0 is already a probability, and anything above 100 was
// never produced by the forward scaling.
func (s *ReconcileService) ScaleToProbability(ctx context.Context, dryRun bool) (*ReconcileReport, error) {
	rows, err := s.repo.ListPercentageStyle(ctx)
	if err != nil {
		return nil, fmt.Errorf("select percentage-style rows: %w", err)
	}
	report := &ReconcileReport{Found: len(rows), DryRun: dryRun}
	for _, row := range rows {
		after := row.EnrollmentChance / 100
		report.Rows = append(report.Rows, ScaledRow{ID: row.ID, Before: row.EnrollmentChance, After: after})
		if dryRun {
			continue
		}
		if err := s.repo.UpdateEnrollmentChance(ctx, row.ID, after); err != nil {
			return report, fmt.Errorf("unscale chance for %s: %w", row.ID, err)
		}
		report.Scaled++
	}
	s.logger.Info("enrollment chance scale-down complete",
		zap.Int("found", report.Found),
		zap.Int("scaled", report.Scaled),
		zap.Bool("dry_run", dryRun))
	return report, nil
}
