package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const featureExportFile = "latest_registration_features.json"

// FeatureExportService appends each registration's engineered features
// to a JSON document on disk, keyed per applicant. The retraining
// tooling consumes this file to build its next dataset.
type FeatureExportService struct {
	mu     sync.Mutex
	dir    string
	logger *zap.Logger
}

// NewFeatureExportService constructs the export service writing into dir.
func NewFeatureExportService(dir string, logger *zap.Logger) *FeatureExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeatureExportService{dir: dir, logger: logger}
}

// Write merges the applicant's feature map into the export file under a
// synthetic student key. Existing entries for other applicants survive;
// re-registering the same applicant overwrites their entry.
func (s *FeatureExportService) Write(applicantID string, features map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create feature export dir: %w", err)
	}
	path := filepath.Join(s.dir, featureExportFile)

	document := map[string]map[string]any{}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &document); err != nil {
			// A corrupt export file should not block registration; start over
			// and keep the bad copy for inspection.
			s.logger.Warn("feature export file is corrupt, resetting", zap.String("path", path), zap.Error(err))
			document = map[string]map[string]any{}
		}
	case os.IsNotExist(err):
		// First write.
	default:
		return fmt.Errorf("read feature export file: %w", err)
	}

	document[fmt.Sprintf("dummy_Student%s", applicantID)] = features

	payload, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feature export: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write feature export file: %w", err)
	}
	return nil
}

// Path returns the location of the export file.
func (s *FeatureExportService) Path() string {
	return filepath.Join(s.dir, featureExportFile)
}
