package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/feago/pkg/errors"
)

func TestSaveImportanceChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importances.png")
	importances := map[string]float64{
		"signal": 3.0,
		"noise":  0.02,
		"other":  0.4,
	}

	if err := SaveImportanceChart(importances, "feature importances", path); err != nil {
		t.Fatalf("SaveImportanceChart() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

func TestSaveImportanceChartEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importances.png")
	err := SaveImportanceChart(nil, "empty", path)
	if err == nil {
		t.Fatal("an empty importance map should fail")
	}
	var value *errors.ValueError
	if !errors.As(err, &value) {
		t.Errorf("error is not a ValueError: %v", err)
	}
}
