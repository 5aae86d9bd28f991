package ml

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testArtifact is a two-tree forest over one numeric and one categorical
// feature, predicting classes [0, 1].
const testArtifact = `{
  "version": "test-1",
  "pipeline": "v2",
  "columns": ["Age at Enrollment", "first_faculty"],
  "classes": [0, 1],
  "trees": [
    {
      "feature": "Age at Enrollment",
      "threshold": 20,
      "default": "left",
      "left": {"value": [1, 3]},
      "right": {"value": [3, 1]}
    },
    {
      "feature": "first_faculty",
      "categories": ["SAHS", "SACE"],
      "default": "right",
      "left": {"value": [0, 4]},
      "right": {"value": [2, 2]}
    }
  ]
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rf_model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadForest(t *testing.T) {
	forest, err := Load(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	assert.Equal(t, PipelineV2, forest.Pipeline())
	assert.Equal(t, []string{"Age at Enrollment", "first_faculty"}, forest.FeatureNames())
	assert.Equal(t, []any{0, 1}, forest.Classes())
	assert.Equal(t, "test-1", forest.Version())
}

func TestLoadForestErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = Load(writeArtifact(t, `{"not valid`))
	assert.Error(t, err)

	_, err = Load(writeArtifact(t, `{"columns": [], "classes": [0, 1], "trees": []}`))
	assert.Error(t, err)
}

func TestForestPredictProba(t *testing.T) {
	forest, err := Load(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	// Young SAHS applicant: both trees lean enrolled.
	probs, err := forest.PredictProba([]any{18.0, "SAHS"})
	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.InDelta(t, 1.0, probs[0]+probs[1], 1e-9)
	assert.Greater(t, probs[1], probs[0])

	label, err := forest.Predict([]any{18.0, "SAHS"})
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	// Older applicant in an unmapped faculty leans the other way.
	probs, err = forest.PredictProba([]any{35.0, "OTHER"})
	require.NoError(t, err)
	assert.Greater(t, probs[0], probs[1])
}

func TestForestMissingValuesFollowDefaults(t *testing.T) {
	forest, err := Load(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	// Nil age takes the left default, nil faculty the right default.
	probs, err := forest.PredictProba([]any{nil, nil})
	require.NoError(t, err)
	require.Len(t, probs, 2)
	// Tree 1 left leaf [1,3] -> 0.75 enrolled; tree 2 right leaf [2,2] -> 0.5.
	assert.InDelta(t, 0.625, probs[1], 1e-9)
}

func TestForestRowLengthMismatch(t *testing.T) {
	forest, err := Load(writeArtifact(t, testArtifact))
	require.NoError(t, err)

	_, err = forest.PredictProba([]any{18.0})
	assert.Error(t, err)
}

func TestModelCacheLoadsOnce(t *testing.T) {
	path := writeArtifact(t, testArtifact)
	cache := NewModelCache(path, zap.NewNop())

	first := cache.Get()
	require.NotNil(t, first)
	// Removing the artifact must not matter once loaded.
	require.NoError(t, os.Remove(path))
	assert.Same(t, first, cache.Get())
}

func TestModelCacheCachesFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	cache := NewModelCache(path, zap.NewNop())

	assert.Nil(t, cache.Get())

	// A failed load stays failed even if the artifact appears later,
	// until an explicit reset.
	require.NoError(t, os.WriteFile(path, []byte(testArtifact), 0o644))
	assert.Nil(t, cache.Get())

	cache.Reset()
	assert.NotNil(t, cache.Get())
}
