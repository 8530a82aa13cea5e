package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	pkgerrors "github.com/oalhaj/salescast-backend/pkg/errors"
)

const linearFixture = `{"intercept": 10.0, "coefficients": [2.0, 3.0]}`

const forestFixture = `{"trees": [
  {"nodes": [
    {"feature": 0, "threshold": 0.5, "left": 1, "right": 2, "value": 0},
    {"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": 100},
    {"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": 200}
  ]},
  {"nodes": [
    {"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": 300}
  ]}
]}`

const scalerFixture = `{"mean": [1.0, 2.0], "scale": [2.0, 4.0]}`

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func writeCommonArtifacts(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, "standard_scaler.json", scalerFixture)
	writeArtifact(t, dir, "feature_columns.txt", "feat_a\nfeat_b\n")
}

func TestLoadLinear(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.ModelKind() != "linearregression" {
		t.Fatalf("kind = %s", store.ModelKind())
	}
	// 10 + 2*1 + 3*2
	if got := store.Regressor().Predict([]float64{1, 2}); got != 18 {
		t.Fatalf("predict = %v, want 18", got)
	}
	if store.FeatureCount() != 2 {
		t.Fatalf("feature count = %d", store.FeatureCount())
	}
}

func TestProbeOrderPrefersForest(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)
	writeArtifact(t, dir, "best_model_randomforest.json", forestFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.ModelKind() != "randomforest" {
		t.Fatalf("kind = %s, want randomforest", store.ModelKind())
	}
}

func TestForestAveragesTrees(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_randomforest.json", forestFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// tree 1 routes 0.4 <= 0.5 to the 100 leaf; tree 2 is a bare 300
	// leaf; the forest averages to 200.
	if got := store.Regressor().Predict([]float64{0.4}); got != 200 {
		t.Fatalf("predict = %v, want 200", got)
	}
	if got := store.Regressor().Predict([]float64{0.9}); got != 250 {
		t.Fatalf("predict = %v, want 250", got)
	}
}

func TestBoostedSumsTrees(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_xgboost.json", `{
  "base_score": 50,
  "learning_rate": 0.5,
  "trees": [
    {"nodes": [{"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": 100}]},
    {"nodes": [{"feature": 0, "threshold": 0, "left": -1, "right": -1, "value": 60}]}
  ]}`)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// 50 + 0.5*100 + 0.5*60
	if got := store.Regressor().Predict([]float64{0}); got != 130 {
		t.Fatalf("predict = %v, want 130", got)
	}
}

func TestLoadNoModelArtifact(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)

	_, err := Load(dir)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeArtifactsUnavailable {
		t.Fatalf("expected ARTIFACTS_UNAVAILABLE, got %v", err)
	}
}

func TestLoadMissingScaler(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)
	writeArtifact(t, dir, "feature_columns.txt", "feat_a\n")

	_, err := Load(dir)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeArtifactsUnavailable {
		t.Fatalf("expected ARTIFACTS_UNAVAILABLE, got %v", err)
	}
}

func TestLoadEmptyFeatureList(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)
	writeArtifact(t, dir, "standard_scaler.json", scalerFixture)
	writeArtifact(t, dir, "feature_columns.txt", "\n\n")

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for empty feature list")
	}
}

func TestLoadCorruptModel(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_randomforest.json", `{"trees": [`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for corrupt model artifact")
	}
}

func TestLoadRejectsCyclicTree(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	// The root points back at itself; Predict would never terminate.
	writeArtifact(t, dir, "best_model_randomforest.json", `{"trees": [
  {"nodes": [
    {"feature": 0, "threshold": 0.5, "left": 0, "right": 0, "value": 0}
  ]}
]}`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected error for a tree with non-forward children")
	}
}

func TestScalerTransform(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out, err := store.Scaler().Transform([]float64{3, 10})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Fatalf("transform = %v, want [1 2]", out)
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := store.Scaler().Transform([]float64{1}); err == nil {
		t.Fatal("expected dimensionality error")
	}
}

func TestScalerZeroScaleIsIdentity(t *testing.T) {
	s := &standardScaler{Mean: []float64{5}, Scale: []float64{0}}
	out, err := s.Transform([]float64{8})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out[0] != 3 {
		t.Fatalf("transform = %v, want 3", out[0])
	}
}

func TestFeatureNamesReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeCommonArtifacts(t, dir)
	writeArtifact(t, dir, "best_model_linearregression.json", linearFixture)

	store, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	names := store.FeatureNames()
	names[0] = "mutated"
	if store.FeatureNames()[0] != "feat_a" {
		t.Fatal("FeatureNames must return a defensive copy")
	}
}
