package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
)

// linearModel is a least-squares fit exported by the training run as
// plain intercept + coefficients.
type linearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

func loadLinear(path string) (Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model linearModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing linear model: %w", err)
	}
	if len(model.Coefficients) == 0 {
		return nil, fmt.Errorf("linear model %s has no coefficients", path)
	}
	return &model, nil
}

func (m *linearModel) Predict(features []float64) float64 {
	out := m.Intercept
	n := len(m.Coefficients)
	if len(features) < n {
		n = len(features)
	}
	for i := 0; i < n; i++ {
		out += m.Coefficients[i] * features[i]
	}
	return out
}

func (m *linearModel) Kind() string {
	return "linearregression"
}
