package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Model is the minimal surface the prediction path needs from a trained
// classifier. Implementations must be safe for concurrent use.
type Model interface {
	// Predict returns the predicted class label for one feature row,
	// ordered to match FeatureNames.
	Predict(row []any) (any, error)
	// Classes returns the label set in training order.
	Classes() []any
	// FeatureNames returns the exact input schema the model was fit on.
	FeatureNames() []string
	// Pipeline identifies which feature stage produced the training data.
	Pipeline() PipelineVersion
}

// ProbabilityModel is implemented by models that can emit a class
// probability distribution alongside the point prediction.
type ProbabilityModel interface {
	PredictProba(row []any) ([]float64, error)
}

// treeNode is one node of a serialized decision tree. Leaf nodes carry
// Value; split nodes carry either a numeric Threshold or a categorical
// membership set, plus a Default branch for missing inputs.
type treeNode struct {
	Feature    string     `json:"feature,omitempty"`
	Threshold  *float64   `json:"threshold,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Left       *treeNode  `json:"left,omitempty"`
	Right      *treeNode  `json:"right,omitempty"`
	Default    string     `json:"default,omitempty"`
	Value      []float64  `json:"value,omitempty"`
}

// forestArtifact is the on-disk classifier format. It embeds the input
// schema and pipeline tag so that loading a model is sufficient to know
// how to feed it.
type forestArtifact struct {
	Version  string          `json:"version"`
	Pipeline PipelineVersion `json:"pipeline"`
	Columns  []string        `json:"columns"`
	Classes  []json.RawMessage `json:"classes"`
	Trees    []*treeNode     `json:"trees"`
}

// Forest is a random-forest classifier evaluated from a JSON artifact.
type Forest struct {
	version  string
	pipeline PipelineVersion
	columns  []string
	colIndex map[string]int
	classes  []any
	trees    []*treeNode
}

// Load reads and validates a forest artifact from disk.
func Load(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var artifact forestArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(artifact.Columns) == 0 {
		return nil, fmt.Errorf("model artifact %s: missing columns", path)
	}
	if len(artifact.Classes) < 2 {
		return nil, fmt.Errorf("model artifact %s: need at least two classes", path)
	}
	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s: no trees", path)
	}
	pipeline := artifact.Pipeline
	if pipeline == "" {
		pipeline = PipelineLegacy
	}

	classes := make([]any, len(artifact.Classes))
	for i, rawClass := range artifact.Classes {
		var v any
		if err := json.Unmarshal(rawClass, &v); err != nil {
			return nil, fmt.Errorf("decode class label %d: %w", i, err)
		}
		// JSON numbers decode as float64; integral labels stay comparable as ints.
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			v = int(f)
		}
		classes[i] = v
	}

	colIndex := make(map[string]int, len(artifact.Columns))
	for i, col := range artifact.Columns {
		colIndex[col] = i
	}

	return &Forest{
		version:  artifact.Version,
		pipeline: pipeline,
		columns:  artifact.Columns,
		colIndex: colIndex,
		classes:  classes,
		trees:    artifact.Trees,
	}, nil
}

func (f *Forest) Classes() []any              { return f.classes }
func (f *Forest) FeatureNames() []string      { return f.columns }
func (f *Forest) Pipeline() PipelineVersion   { return f.pipeline }
func (f *Forest) Version() string             { return f.version }

// Predict returns the class with the highest averaged probability.
func (f *Forest) Predict(row []any) (any, error) {
	probs, err := f.PredictProba(row)
	if err != nil {
		return nil, err
	}
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return f.classes[best], nil
}

// PredictProba averages the normalized leaf distributions of every tree.
func (f *Forest) PredictProba(row []any) ([]float64, error) {
	if len(row) != len(f.columns) {
		return nil, fmt.Errorf("expected %d features, got %d", len(f.columns), len(row))
	}
	sum := make([]float64, len(f.classes))
	for _, tree := range f.trees {
		leaf, err := f.walk(tree, row)
		if err != nil {
			return nil, err
		}
		total := 0.0
		for _, v := range leaf {
			total += v
		}
		if total <= 0 {
			continue
		}
		for i := range sum {
			if i < len(leaf) {
				sum[i] += leaf[i] / total
			}
		}
	}
	n := float64(len(f.trees))
	for i := range sum {
		sum[i] /= n
	}
	return sum, nil
}

func (f *Forest) walk(node *treeNode, row []any) ([]float64, error) {
	for node != nil {
		if node.Value != nil {
			return node.Value, nil
		}
		idx, ok := f.colIndex[node.Feature]
		if !ok {
			return nil, fmt.Errorf("split on unknown feature %q", node.Feature)
		}
		next := f.branch(node, row[idx])
		if next == nil {
			return nil, fmt.Errorf("tree node for %q has no matching branch", node.Feature)
		}
		node = next
	}
	return nil, fmt.Errorf("malformed tree: nil node")
}

// branch picks the child for one split. Missing values follow the
// Default branch recorded at training time.
func (f *Forest) branch(node *treeNode, value any) *treeNode {
	if value == nil {
		return f.defaultBranch(node)
	}
	if node.Threshold != nil {
		num, ok := toFloat(value)
		if !ok {
			return f.defaultBranch(node)
		}
		if num <= *node.Threshold {
			return node.Left
		}
		return node.Right
	}
	if len(node.Categories) > 0 {
		s := fmt.Sprintf("%v", value)
		for _, cat := range node.Categories {
			if cat == s {
				return node.Left
			}
		}
		return node.Right
	}
	return f.defaultBranch(node)
}

func (f *Forest) defaultBranch(node *treeNode) *treeNode {
	if node.Default == "right" {
		return node.Right
	}
	return node.Left
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

type cacheState int

const (
	stateUnloaded cacheState = iota
	stateLoaded
	stateFailed
)

// ModelCache lazily loads the classifier once and remembers the outcome.
// A failed load is cached too: callers get a fast nil instead of hitting
// the filesystem on every prediction.
type ModelCache struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger

	state cacheState
	model *Forest
}

// NewModelCache builds a cache for the artifact at path. Nothing is
// loaded until the first Get.
func NewModelCache(path string, logger *zap.Logger) *ModelCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelCache{path: path, logger: logger}
}

// Get returns the loaded model, or nil if loading failed. The load is
// attempted at most once per process.
func (c *ModelCache) Get() Model {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateUnloaded {
		model, err := Load(c.path)
		if err != nil {
			c.state = stateFailed
			c.logger.Warn("model load failed, predictions will use fallback",
				zap.String("path", c.path),
				zap.Error(err))
		} else {
			c.state = stateLoaded
			c.model = model
			c.logger.Info("model loaded",
				zap.String("path", c.path),
				zap.String("version", model.Version()),
				zap.String("pipeline", string(model.Pipeline())),
				zap.Int("features", len(model.FeatureNames())))
		}
	}

	if c.state == stateFailed {
		return nil
	}
	return c.model
}

// Reset clears the cached outcome so the next Get reloads from disk.
func (c *ModelCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = stateUnloaded
	c.model = nil
}
