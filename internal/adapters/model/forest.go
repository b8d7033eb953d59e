package model

import (
	"fmt"
	"sort"

	"github.com/elmehdi/phishmail/internal/core"
)

// TreeNode is one node of a fitted decision tree. Leaves have Left == -1
// and carry the training class counts in Value.
type TreeNode struct {
	Feature   int        `json:"feature"`
	Threshold float64    `json:"threshold"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
	Value     [2]float64 `json:"value"`
}

// Tree is a fitted decision tree as a flat node array rooted at index 0
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// ForestModel is the URL classifier: a fitted random forest whose per-tree
// leaf class distributions are averaged into a probability. It implements
// core.URLClassifier.
type ForestModel struct {
	trees        []Tree
	importances  []float64
	featureNames []string
}

// NewForestModel wraps fitted trees with their feature schema and
// precomputed impurity importances
func NewForestModel(trees []Tree, featureNames []string, importances []float64) (*ForestModel, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("url model has no trees")
	}
	if len(importances) != len(featureNames) {
		return nil, fmt.Errorf("url model has %d importances for %d features",
			len(importances), len(featureNames))
	}
	return &ForestModel{
		trees:        trees,
		importances:  importances,
		featureNames: featureNames,
	}, nil
}

// NumFeatures returns the expected feature vector length
func (m *ForestModel) NumFeatures() int {
	return len(m.featureNames)
}

// PredictProba returns the phishing probability for a schema-aligned
// feature vector
func (m *ForestModel) PredictProba(features []float64) (float64, error) {
	if len(features) != len(m.featureNames) {
		return 0, fmt.Errorf("url model expects %d features, got %d", len(m.featureNames), len(features))
	}

	sum := 0.0
	for _, tree := range m.trees {
		proba, err := tree.predict(features)
		if err != nil {
			return 0, err
		}
		sum += proba
	}
	return sum / float64(len(m.trees)), nil
}

func (t Tree) predict(features []float64) (float64, error) {
	i := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if i < 0 || i >= len(t.Nodes) {
			return 0, fmt.Errorf("tree traversal out of bounds at node %d", i)
		}
		node := t.Nodes[i]
		if node.Left == -1 {
			total := node.Value[0] + node.Value[1]
			if total == 0 {
				return 0, nil
			}
			return node.Value[1] / total, nil
		}
		if node.Feature < 0 || node.Feature >= len(features) {
			return 0, fmt.Errorf("tree references feature %d outside vector of %d", node.Feature, len(features))
		}
		if features[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
	return 0, fmt.Errorf("tree traversal did not reach a leaf")
}

// TopImportances returns the n features with the highest impurity-based
// importance
func (m *ForestModel) TopImportances(n int) []core.WeightedFeature {
	features := make([]core.WeightedFeature, len(m.featureNames))
	for i, name := range m.featureNames {
		features[i] = core.WeightedFeature{Name: name, Weight: m.importances[i]}
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].Weight > features[j].Weight
	})

	if n > len(features) {
		n = len(features)
	}
	return features[:n]
}
