package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/ml"
	"github.com/itzjmbruhhh/NU-Admission/internal/models"
)

const fallbackChance = 50.0

// defaultPredictTimeout bounds a single scoring call, model load
// included, so a stuck artifact read cannot hold up registration.
const defaultPredictTimeout = 5 * time.Second

type applicantPredictor interface {
	PredictApplicant(ctx context.Context, applicant *models.Applicant) (ml.PredictionResult, error)
}

type chanceWriter interface {
	UpdateEnrollmentChance(ctx context.Context, id string, value float64) error
}

// ChanceService owns enrollment-chance scoring for applicants. It is the
// only layer allowed to swallow prediction failures: everything below it
// reports errors honestly, and everything above it always receives a
// usable percentage.
type ChanceService struct {
	predictor applicantPredictor
	repo      chanceWriter
	metrics   *MetricsService
	timeout   time.Duration
	logger    *zap.Logger
}

// NewChanceService constructs the chance service. A non-positive timeout
// falls back to the default prediction deadline.
func NewChanceService(predictor applicantPredictor, repo chanceWriter, metrics *MetricsService, timeout time.Duration, logger *zap.Logger) *ChanceService {
	if timeout <= 0 {
		timeout = defaultPredictTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChanceService{predictor: predictor, repo: repo, metrics: metrics, timeout: timeout, logger: logger}
}

// Score computes the enrollment chance for an applicant as a percentage
// in [0,100]. It never fails: a scoring problem falls back to the
// applicant's previous chance, or 50.0 when none exists.
func (s *ChanceService) Score(ctx context.Context, applicant *models.Applicant) float64 {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.predictor.PredictApplicant(ctx, applicant)
	if err != nil {
		previous := fallbackChance
		if applicant.EnrollmentChance != nil {
			previous = *applicant.EnrollmentChance
		}
		s.logger.Warn("enrollment chance prediction failed, keeping fallback",
			zap.String("applicant_id", applicant.ID),
			zap.Float64("fallback", previous),
			zap.Error(err))
		if s.metrics != nil {
			s.metrics.RecordPrediction("error")
		}
		return previous
	}

	if s.metrics != nil {
		outcome := "model"
		if result.Heuristic {
			outcome = "heuristic"
		}
		s.metrics.RecordPrediction(outcome)
	}

	// Model output is a probability; the portal stores percentages.
	return result.Probability * 100
}

// ScoreAndSave scores an applicant and persists the chance through the
// direct write channel so the value lands exactly as computed. Storage
// failures are logged and masked like prediction failures: the caller
// gets the last stored value back, never a number the record does not
// actually hold.
func (s *ChanceService) ScoreAndSave(ctx context.Context, applicant *models.Applicant) float64 {
	chance := s.Score(ctx, applicant)
	if err := s.repo.UpdateEnrollmentChance(ctx, applicant.ID, chance); err != nil {
		previous := fallbackChance
		if applicant.EnrollmentChance != nil {
			previous = *applicant.EnrollmentChance
		}
		s.logger.Error("failed to persist enrollment chance, keeping fallback",
			zap.String("applicant_id", applicant.ID),
			zap.Float64("computed", chance),
			zap.Float64("fallback", previous),
			zap.Error(err))
		return previous
	}
	applicant.EnrollmentChance = &chance
	return chance
}
