package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
)

// standardScaler applies the persisted (x - mean) / scale transform.
// Its dimensionality is fixed at fit time and must equal the canonical
// feature list length.
type standardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func loadScaler(path string) (Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s standardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scaler: %w", err)
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Scale) {
		return nil, fmt.Errorf("scaler %s has inconsistent dimensions (mean=%d scale=%d)", path, len(s.Mean), len(s.Scale))
	}
	return &s, nil
}

func (s *standardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(features))
	}
	out := make([]float64, len(features))
	for i, v := range features {
		scale := s.Scale[i]
		if scale == 0 {
			// A zero-variance column scales as identity, matching the
			// behavior the training run relied on.
			scale = 1
		}
		out[i] = (v - s.Mean[i]) / scale
	}
	return out, nil
}
