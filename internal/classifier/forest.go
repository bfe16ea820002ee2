package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/procurelens/supplier-risk/internal/errors"
)

// Node is one split or leaf of a decision tree, stored flat by index.
// Internal nodes route on Feature <= Threshold; leaf nodes carry a class
// probability distribution and have Left == Right == -1.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Leaf      []float64 `json:"leaf,omitempty"`
}

// Tree is a single decision tree rooted at Nodes[0]
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a persisted decision-forest classifier. Class probabilities are
// the per-tree leaf distributions averaged across trees; the predicted label
// is the argmax. Immutable after load, safe for concurrent use.
type Forest struct {
	FeatureCount int    `json:"feature_count"`
	ClassCount   int    `json:"class_count"`
	Trees        []Tree `json:"trees"`
}

// LoadForest reads a forest artifact from disk. Missing or malformed
// artifacts are fatal LoadErrors.
func LoadForest(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("classifier", err)
	}
	defer file.Close()

	var forest Forest
	if err := json.NewDecoder(file).Decode(&forest); err != nil {
		return nil, errors.NewLoadError("classifier", err)
	}

	if err := forest.validate(); err != nil {
		return nil, errors.NewLoadError("classifier", err)
	}

	return &forest, nil
}

func (f *Forest) validate() error {
	if f.FeatureCount <= 0 || f.ClassCount <= 0 {
		return fmt.Errorf("forest declares %d features and %d classes", f.FeatureCount, f.ClassCount)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	for ti, tree := range f.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Leaf != nil {
				if len(node.Leaf) != f.ClassCount {
					return fmt.Errorf("tree %d node %d leaf has %d classes, want %d",
						ti, ni, len(node.Leaf), f.ClassCount)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= f.FeatureCount {
				return fmt.Errorf("tree %d node %d splits on feature %d outside schema", ti, ni, node.Feature)
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) ||
				node.Right < 0 || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has child index outside tree", ti, ni)
			}
		}
	}
	return nil
}

// NumClasses implements Model
func (f *Forest) NumClasses() int { return f.ClassCount }

// NumFeatures implements Model
func (f *Forest) NumFeatures() int { return f.FeatureCount }

// PredictProba implements Model: average of per-tree leaf distributions
func (f *Forest) PredictProba(vector []float64) ([]float64, error) {
	if len(vector) != f.FeatureCount {
		return nil, errors.NewValidationError(
			fmt.Sprintf("feature vector has %d columns, model expects %d", len(vector), f.FeatureCount),
			"feature_vector", "")
	}

	probs := make([]float64, f.ClassCount)
	for _, tree := range f.Trees {
		leaf := tree.walk(vector)
		for i, p := range leaf {
			probs[i] += p
		}
	}

	n := float64(len(f.Trees))
	for i := range probs {
		probs[i] /= n
	}
	return probs, nil
}

// Predict implements Model: argmax of the averaged class distribution
func (f *Forest) Predict(vector []float64) (int, error) {
	probs, err := f.PredictProba(vector)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best, nil
}

func (t Tree) walk(vector []float64) []float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf != nil {
			return node.Leaf
		}
		if vector[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
