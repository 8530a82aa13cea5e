package artifacts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
)

const (
	scalerFile      = "standard_scaler.json"
	featureListFile = "feature_columns.txt"
)

// Regressor is a fitted model treated as a black box.
type Regressor interface {
	// Predict maps one scaled feature vector to the forecast value.
	Predict(features []float64) float64
	// Kind identifies the persisted model variant.
	Kind() string
}

// Scaler normalizes a raw feature vector the way the training run did.
type Scaler interface {
	Transform(features []float64) ([]float64, error)
}

// modelProbeOrder lists the supported model variants in priority
// order: when several artifacts are present, the earliest wins. The
// order is load-bearing and mirrors the training pipeline's export
// preference; do not reorder.
var modelProbeOrder = []struct {
	kind string
	load func(path string) (Regressor, error)
}{
	{"randomforest", loadForest},
	{"xgboost", loadBoosted},
	{"linearregression", loadLinear},
}

// Store holds the three prediction artifacts for the process lifetime.
// All accessors are read-only; nothing mutates a Store after Load.
type Store struct {
	regressor Regressor
	scaler    Scaler
	features  []string
}

// Load reads the regressor, scaler and canonical feature list from
// dir. The three load together or not at all.
func Load(dir string) (*Store, error) {
	regressor, err := probeRegressor(dir)
	if err != nil {
		return nil, err
	}

	scaler, err := loadScaler(filepath.Join(dir, scalerFile))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeArtifactsUnavailable, err, "loading scaler")
	}

	features, err := loadFeatureList(filepath.Join(dir, featureListFile))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeArtifactsUnavailable, err, "loading feature list")
	}

	return &Store{regressor: regressor, scaler: scaler, features: features}, nil
}

func probeRegressor(dir string) (Regressor, error) {
	tried := make([]string, 0, len(modelProbeOrder))
	for _, probe := range modelProbeOrder {
		path := filepath.Join(dir, fmt.Sprintf("best_model_%s.json", probe.kind))
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				tried = append(tried, probe.kind)
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeArtifactsUnavailable, err, "probing model artifact")
		}
		reg, err := probe.load(path)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeArtifactsUnavailable, err, fmt.Sprintf("loading %s model", probe.kind))
		}
		return reg, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeArtifactsUnavailable, "no model artifact found").
		WithDetails(map[string]any{"tried": tried, "dir": dir})
}

func loadFeatureList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("feature list %s is empty", path)
	}
	return names, nil
}

// Regressor returns the loaded model.
func (s *Store) Regressor() Regressor {
	return s.regressor
}

// Scaler returns the loaded normalization transform.
func (s *Store) Scaler() Scaler {
	return s.scaler
}

// FeatureNames returns a copy of the canonical feature order.
func (s *Store) FeatureNames() []string {
	out := make([]string, len(s.features))
	copy(out, s.features)
	return out
}

// FeatureCount returns the expected feature-vector dimensionality.
func (s *Store) FeatureCount() int {
	return len(s.features)
}

// ModelKind exposes the variant identifier of the loaded regressor.
func (s *Store) ModelKind() string {
	if s == nil || s.regressor == nil {
		return ""
	}
	return s.regressor.Kind()
}
