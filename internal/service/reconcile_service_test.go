package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/repository"
)

// mockReconcileRepo keeps chances in memory and reimplements the
// selection predicates the real queries use.
type mockReconcileRepo struct {
	chances map[string]float64
}

func (m *mockReconcileRepo) ListProbabilityStyle(ctx context.Context) ([]repository.ChanceRow, error) {
	var rows []repository.ChanceRow
	for id, v := range m.chances {
		if v <= 1.0000001 {
			rows = append(rows, repository.ChanceRow{ID: id, EnrollmentChance: v})
		}
	}
	return rows, nil
}

func (m *mockReconcileRepo) ListPercentageStyle(ctx context.Context) ([]repository.ChanceRow, error) {
	var rows []repository.ChanceRow
	for id, v := range m.chances {
		if v > 1.0 && v <= 100.0 {
			rows = append(rows, repository.ChanceRow{ID: id, EnrollmentChance: v})
		}
	}
	return rows, nil
}

func (m *mockReconcileRepo) UpdateEnrollmentChance(ctx context.Context, id string, value float64) error {
	m.chances[id] = value
	return nil
}

func TestReconcileScaleToPercentage(t *testing.T) {
	repo := &mockReconcileRepo{chances: map[string]float64{
		"a1": 0.87,
		"a2": 1.0,
		"a3": 91.5, // already a percentage, untouched
	}}
	svc := NewReconcileService(repo, zap.NewNop())

	report, err := svc.ScaleToPercentage(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Found)
	assert.Equal(t, 2, report.Scaled)
	assert.InDelta(t, 87.0, repo.chances["a1"], 1e-9)
	assert.InDelta(t, 100.0, repo.chances["a2"], 1e-9)
	assert.InDelta(t, 91.5, repo.chances["a3"], 1e-9)
}

func TestReconcileScaleToPercentageIdempotent(t *testing.T) {
	repo := &mockReconcileRepo{chances: map[string]float64{"a1": 0.87}}
	svc := NewReconcileService(repo, zap.NewNop())

	_, err := svc.ScaleToPercentage(context.Background(), false)
	require.NoError(t, err)

	second, err := svc.ScaleToPercentage(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Found)
	assert.InDelta(t, 87.0, repo.chances["a1"], 1e-9)
}

func TestReconcileDryRunLeavesValues(t *testing.T) {
	repo := &mockReconcileRepo{chances: map[string]float64{"a1": 0.8}}
	svc := NewReconcileService(repo, zap.NewNop())

	report, err := svc.ScaleToPercentage(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Found)
	assert.Equal(t, 0, report.Scaled)
	require.Len(t, report.Rows, 1)
	assert.InDelta(t, 80.0, report.Rows[0].After, 1e-9)
	assert.InDelta(t, 0.8, repo.chances["a1"], 1e-9)
}

func TestReconcileScaleToProbability(t *testing.T) {
	repo := &mockReconcileRepo{chances: map[string]float64{
		"a1": 87.0,
		"a2": 0.5,   // already a probability, untouched
		"a3": 250.0, // out of range, untouched
	}}
	svc := NewReconcileService(repo, zap.NewNop())

	report, err := svc.ScaleToProbability(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Found)
	assert.InDelta(t, 0.87, repo.chances["a1"], 1e-9)
	assert.InDelta(t, 0.5, repo.chances["a2"], 1e-9)
	assert.InDelta(t, 250.0, repo.chances["a3"], 1e-9)
}

func TestReconcileRoundTrip(t *testing.T) {
	repo := &mockReconcileRepo{chances: map[string]float64{"a1": 0.42}}
	svc := NewReconcileService(repo, zap.NewNop())

	_, err := svc.ScaleToPercentage(context.Background(), false)
	require.NoError(t, err)
	_, err = svc.ScaleToProbability(context.Background(), false)
	require.NoError(t, err)

	assert.InDelta(t, 0.42, repo.chances["a1"], 1e-9)
}
