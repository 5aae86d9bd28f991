package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/dto"
)

type mockDashboardRepo struct {
	totalsCalls int
}

func (m *mockDashboardRepo) Totals(ctx context.Context) (*dto.DashboardTotals, error) {
	m.totalsCalls++
	avg := 62.5
	return &dto.DashboardTotals{TotalApplicants: 120, Enrolled: 45, NotEnrolled: 75, AvgChance: &avg, ScoredApplicants: 110}, nil
}

func (m *mockDashboardRepo) CountByProgram(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return []dto.CountBucket{{Label: "BACHELOR OF SCIENCE IN NURSING", Count: 40, Enrolled: 21}}, nil
}

func (m *mockDashboardRepo) CountByEntryLevel(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return []dto.CountBucket{{Label: "FRESHMAN", Count: 100, Enrolled: 40}}, nil
}

func (m *mockDashboardRepo) CountByProvince(ctx context.Context, limit int) ([]dto.CountBucket, error) {
	return []dto.CountBucket{{Label: "BATANGAS", Count: 60, Enrolled: 30}}, nil
}

type staticDescriber string

func (s staticDescriber) DescribeModel() string { return string(s) }

func TestDashboardSummary(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := NewDashboardService(repo, staticDescriber("v2 pipeline, 28 features"), nil, 0, zap.NewNop())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 120, summary.Totals.TotalApplicants)
	assert.Equal(t, 45, summary.Totals.Enrolled)
	require.Len(t, summary.ByProgram, 1)
	assert.Equal(t, "BACHELOR OF SCIENCE IN NURSING", summary.ByProgram[0].Label)
	assert.Equal(t, "v2 pipeline, 28 features", summary.ModelStatus)
}

func TestDashboardSummaryWithoutCache(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := NewDashboardService(repo, nil, nil, 0, zap.NewNop())

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)
	_, err = svc.Summary(context.Background())
	require.NoError(t, err)

	// No cache wired: every call goes to the repository.
	assert.Equal(t, 2, repo.totalsCalls)
}
