package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
)

// treeNode is one node of an exported decision tree. Leaves carry a
// negative Left index.
type treeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

func (t decisionTree) predict(features []float64) float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Left < 0 {
			return node.Value
		}
		if node.Feature < len(features) && features[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

func (t decisionTree) validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, node := range t.Nodes {
		if node.Left < 0 {
			continue
		}
		if node.Left >= len(t.Nodes) || node.Right < 0 || node.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
		// Children must point strictly forward, so every walk from the
		// root terminates.
		if node.Left <= i || node.Right <= i {
			return fmt.Errorf("node %d has non-forward children", i)
		}
	}
	return nil
}

// forestModel averages independent trees (the random forest export).
type forestModel struct {
	Trees []decisionTree `json:"trees"`
}

func loadForest(path string) (Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model forestModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing forest model: %w", err)
	}
	if len(model.Trees) == 0 {
		return nil, fmt.Errorf("forest model %s has no trees", path)
	}
	for i, tree := range model.Trees {
		if err := tree.validate(); err != nil {
			return nil, fmt.Errorf("forest tree %d: %w", i, err)
		}
	}
	return &model, nil
}

func (m *forestModel) Predict(features []float64) float64 {
	sum := 0.0
	for _, tree := range m.Trees {
		sum += tree.predict(features)
	}
	return sum / float64(len(m.Trees))
}

func (m *forestModel) Kind() string {
	return "randomforest"
}

// boostedModel sums shrunken trees on top of a base score (the
// gradient boosting export).
type boostedModel struct {
	BaseScore    float64        `json:"base_score"`
	LearningRate float64        `json:"learning_rate"`
	Trees        []decisionTree `json:"trees"`
}

func loadBoosted(path string) (Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model boostedModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing boosted model: %w", err)
	}
	if len(model.Trees) == 0 {
		return nil, fmt.Errorf("boosted model %s has no trees", path)
	}
	for i, tree := range model.Trees {
		if err := tree.validate(); err != nil {
			return nil, fmt.Errorf("boosted tree %d: %w", i, err)
		}
	}
	if model.LearningRate == 0 {
		model.LearningRate = 1
	}
	return &model, nil
}

func (m *boostedModel) Predict(features []float64) float64 {
	out := m.BaseScore
	for _, tree := range m.Trees {
		out += m.LearningRate * tree.predict(features)
	}
	return out
}

func (m *boostedModel) Kind() string {
	return "xgboost"
}
