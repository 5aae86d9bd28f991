package ml

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/itzjmbruhhh/NU-Admission/internal/models"
)

// PredictionResult is the outcome of one enrollment prediction.
// Probability is the chance of the positive (enrolled) class, in [0,1].
type PredictionResult struct {
	Prediction  int
	Probability float64
	Heuristic   bool
}

// numericColumns are model inputs coerced to numbers before inference.
// Sentinel strings in these columns become missing values.
var numericColumns = map[string]bool{
	"School Year":           true,
	"School Term":           true,
	"Age at Enrollment":     true,
	"Requirement Agreement": true,
	"Disability":            true,
	"Indigenous":            true,
	"second_choice_missing": true,
	"same_faculty":          true,
	"valid_second_choice":   true,
	"second_choice_other":   true,
	"diff_faculty":          true,
	"is_transferee":         true,
	"is_other_entry":        true,
	"entry_level_freq":      true,
	"gender_binary":         true,
	"student_type_binary":   true,
	"school_type_binary":    true,
}

// Predictor scores applicants against the cached classifier, degrading
// to a heuristic when no model is available.
type Predictor struct {
	cache  *ModelCache
	logger *zap.Logger
}

// NewPredictor wires a predictor to a model cache.
func NewPredictor(cache *ModelCache, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{cache: cache, logger: logger}
}

// PredictApplicant flattens and scores one applicant. The only error it
// returns is the header-row guard from feature engineering; every other
// failure mode resolves to a usable result.
func (p *Predictor) PredictApplicant(ctx context.Context, applicant *models.Applicant) (PredictionResult, error) {
	record := FlatRecord(applicant)

	model := p.cache.Get()
	if model != nil && model.Pipeline() == PipelineV2 {
		features, err := EngineerFeatures(record)
		if err != nil {
			return PredictionResult{}, err
		}
		return p.score(ctx, model, features), nil
	}

	// Legacy pipeline, or no model at all. Feature engineering still runs
	// so the header guard applies uniformly.
	if _, err := EngineerFeatures(record); err != nil {
		return PredictionResult{}, err
	}
	if model == nil {
		return heuristicResult(record), nil
	}
	return p.score(ctx, model, LegacyFeatures(record)), nil
}

// PredictFeatures scores an already-engineered feature map. Used by the
// batch rescoring path where flattening happened upstream.
func (p *Predictor) PredictFeatures(ctx context.Context, features map[string]any) PredictionResult {
	model := p.cache.Get()
	if model == nil {
		return heuristicFromFeatures(features)
	}
	return p.score(ctx, model, features)
}

func (p *Predictor) score(ctx context.Context, model Model, features map[string]any) PredictionResult {
	if err := ctx.Err(); err != nil {
		p.logger.Warn("prediction skipped", zap.Error(err))
		return PredictionResult{Prediction: 0, Probability: 0.5}
	}

	row := p.alignRow(model, features)

	if proba, ok := model.(ProbabilityModel); ok {
		probs, err := proba.PredictProba(row)
		if err != nil {
			p.logger.Warn("probability inference failed", zap.Error(err))
			return PredictionResult{Prediction: 0, Probability: 0.5}
		}
		idx := positiveClassIndex(model.Classes())
		prob := probs[idx]
		prediction := 0
		if prob >= 0.5 {
			prediction = 1
		}
		return PredictionResult{Prediction: prediction, Probability: prob}
	}

	label, err := model.Predict(row)
	if err != nil {
		p.logger.Warn("inference failed", zap.Error(err))
		return PredictionResult{Prediction: 0, Probability: 0.5}
	}
	if isPositiveLabel(label) {
		return PredictionResult{Prediction: 1, Probability: 0.7}
	}
	return PredictionResult{Prediction: 0, Probability: 0.3}
}

// alignRow orders features into the model's input schema, coercing
// numeric columns and filling gaps with missing values.
func (p *Predictor) alignRow(model Model, features map[string]any) []any {
	names := model.FeatureNames()
	row := make([]any, len(names))
	for i, name := range names {
		value, ok := features[name]
		if !ok {
			p.logger.Warn("feature missing from input, treating as null", zap.String("feature", name))
			continue
		}
		if value == nil {
			continue
		}
		if numericColumns[name] {
			row[i] = coerceNumeric(value)
			continue
		}
		row[i] = value
	}
	return row
}

func coerceNumeric(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" || strings.EqualFold(s, Missing) || strings.EqualFold(s, "NA") || strings.EqualFold(s, "NAN") {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return nil
	default:
		return nil
	}
}

// positiveClassIndex finds the enrolled class among the label set,
// defaulting to the last position when no recognizable label is found.
func positiveClassIndex(classes []any) int {
	for i, class := range classes {
		switch c := class.(type) {
		case int:
			if c == 1 {
				return i
			}
		case bool:
			if c {
				return i
			}
		case string:
			upper := strings.ToUpper(c)
			if upper == "ENROLLED" || upper == "YES" || upper == "1" {
				return i
			}
		}
	}
	return len(classes) - 1
}

func isPositiveLabel(label any) bool {
	switch v := label.(type) {
	case int:
		return v == 1
	case float64:
		return v == 1
	case bool:
		return v
	case string:
		upper := strings.ToUpper(v)
		return upper == "ENROLLED" || upper == "YES" || upper == "1"
	default:
		return false
	}
}

// heuristicResult approximates a score from the flat record when no
// model can be loaded. Completing the requirement agreement carries the
// bulk of the signal in historical enrollments.
func heuristicResult(record map[string]any) PredictionResult {
	agreed := BinaryFlag(record["Requirement Agreement"]) == 1
	hasProgram := false
	if v, ok := record["Program (First Choice)"]; ok && v != nil {
		if s, isStr := v.(string); !isStr || strings.TrimSpace(s) != "" {
			hasProgram = true
		}
	}
	return heuristicScore(agreed, hasProgram)
}

func heuristicFromFeatures(features map[string]any) PredictionResult {
	agreed := BinaryFlag(features["Requirement Agreement"]) == 1
	hasProgram := false
	if v, ok := features["Program (First Choice)"]; ok && v != nil {
		if s, isStr := v.(string); !isStr || (strings.TrimSpace(s) != "" && s != Missing) {
			hasProgram = true
		}
	}
	return heuristicScore(agreed, hasProgram)
}

func heuristicScore(agreed, hasProgram bool) PredictionResult {
	if agreed && hasProgram {
		return PredictionResult{Prediction: 1, Probability: 0.65, Heuristic: true}
	}
	return PredictionResult{Prediction: 0, Probability: 0.35, Heuristic: true}
}

// DescribeModel reports the cached model state for health endpoints.
func (p *Predictor) DescribeModel() string {
	model := p.cache.Get()
	if model == nil {
		return "unavailable (heuristic fallback active)"
	}
	return fmt.Sprintf("%s pipeline, %d features", model.Pipeline(), len(model.FeatureNames()))
}
