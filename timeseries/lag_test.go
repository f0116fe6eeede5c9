package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/feago/core/model"
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// solarFixture returns an 8-row table sampled every 15 minutes with a time
// index attached.
func solarFixture(t *testing.T) *table.Table {
	t.Helper()
	start := time.Date(2022, 5, 15, 12, 0, 0, 0, time.UTC)
	times := make([]time.Time, 8)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * 15 * time.Minute)
	}

	base, err := table.New(
		series.New([]float64{31.31, 31.51, 32.15, 32.39, 32.62, 32.50, 32.52, 32.68}, series.Float, "ambient_temp"),
		series.New([]float64{49.18, 49.84, 52.35, 50.63, 49.61, 47.01, 46.67, 47.52}, series.Float, "module_temp"),
	)
	if err != nil {
		t.Fatalf("table.New() error = %v", err)
	}
	X, err := base.WithIndex(table.NewTimeIndex(times))
	if err != nil {
		t.Fatalf("WithIndex() error = %v", err)
	}
	return X
}

func TestNewLagTransformer(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "periods", opts: []Option{WithPeriods(3)}},
		{name: "freq", opts: []Option{WithFreq("1h")}},
		{name: "zero periods", opts: []Option{WithPeriods(0)}, wantErr: true},
		{name: "negative periods", opts: []Option{WithPeriods(-2)}, wantErr: true},
		{name: "unparseable freq", opts: []Option{WithFreq("cumbia")}, wantErr: true},
		{name: "negative freq", opts: []Option{WithFreq("-1h")}, wantErr: true},
		{name: "periods and freq together", opts: []Option{WithPeriods(2), WithFreq("1h")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLagTransformer(tt.opts...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var config *errors.ConfigurationError
				if !errors.As(err, &config) {
					t.Errorf("error is not a ConfigurationError: %v", err)
				}
			}
		})
	}
}

func TestLagTransformerPeriods(t *testing.T) {
	X := solarFixture(t)

	lagger, err := NewLagTransformer(WithPeriods(3), WithVariables("ambient_temp"))
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	out, err := lagger.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if !out.HasColumn("ambient_temp_lag_3pds") {
		t.Fatalf("lagged column missing, columns = %v", out.Names())
	}
	if !out.HasColumn("ambient_temp") {
		t.Error("original column was dropped without drop-original")
	}

	lagged, err := out.Float("ambient_temp_lag_3pds")
	if err != nil {
		t.Fatalf("Float() error = %v", err)
	}
	original, _ := X.Float("ambient_temp")
	for i := 0; i < 3; i++ {
		if !math.IsNaN(lagged[i]) {
			t.Errorf("lagged[%d] = %v, want NaN before the shift horizon", i, lagged[i])
		}
	}
	for i := 3; i < len(lagged); i++ {
		if lagged[i] != original[i-3] {
			t.Errorf("lagged[%d] = %v, want %v", i, lagged[i], original[i-3])
		}
	}
}

func TestLagTransformerDefaultPeriod(t *testing.T) {
	X := solarFixture(t)

	lagger, err := NewLagTransformer()
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	out, err := lagger.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for _, name := range []string{"ambient_temp_lag_1pds", "module_temp_lag_1pds"} {
		if !out.HasColumn(name) {
			t.Errorf("column %q missing, columns = %v", name, out.Names())
		}
	}
}

func TestLagTransformerFreq(t *testing.T) {
	X := solarFixture(t)

	lagger, err := NewLagTransformer(WithFreq("1h"), WithVariables("module_temp"))
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	out, err := lagger.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}

	if !out.HasColumn("module_temp_lag_1h") {
		t.Fatalf("lagged column missing, columns = %v", out.Names())
	}
	lagged, err := out.Float("module_temp_lag_1h")
	if err != nil {
		t.Fatalf("Float() error = %v", err)
	}
	original, _ := X.Float("module_temp")

	// One hour is four 15-minute rows.
	for i := 0; i < 4; i++ {
		if !math.IsNaN(lagged[i]) {
			t.Errorf("lagged[%d] = %v, want NaN before the shift horizon", i, lagged[i])
		}
	}
	for i := 4; i < len(lagged); i++ {
		if lagged[i] != original[i-4] {
			t.Errorf("lagged[%d] = %v, want %v", i, lagged[i], original[i-4])
		}
	}
}

func TestLagTransformerFillValue(t *testing.T) {
	X := solarFixture(t)

	lagger, err := NewLagTransformer(
		WithPeriods(2),
		WithVariables("module_temp"),
		WithFillValue(0),
	)
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	out, err := lagger.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	lagged, _ := out.Float("module_temp_lag_2pds")
	if lagged[0] != 0 || lagged[1] != 0 {
		t.Errorf("boundary rows = %v, %v, want the fill value 0", lagged[0], lagged[1])
	}
}

func TestLagTransformerDropOriginal(t *testing.T) {
	X := solarFixture(t)

	lagger, err := NewLagTransformer(WithDropOriginal(true))
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	out, err := lagger.Transform(X)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out.HasColumn("ambient_temp") || out.HasColumn("module_temp") {
		t.Errorf("original columns survived drop-original, columns = %v", out.Names())
	}
	if !out.HasColumn("ambient_temp_lag_1pds") {
		t.Errorf("lagged column missing, columns = %v", out.Names())
	}
}

func TestLagTransformerIndexIntegrity(t *testing.T) {
	X := solarFixture(t)
	times := X.Index().Times()

	t.Run("duplicate index entries", func(t *testing.T) {
		dup := append([]time.Time(nil), times...)
		dup[7] = dup[6]
		broken, err := X.WithIndex(table.NewTimeIndex(dup))
		if err != nil {
			t.Fatalf("WithIndex() error = %v", err)
		}
		lagger, _ := NewLagTransformer()
		_, err = lagger.Transform(broken)
		var integrity *errors.IndexIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not an IndexIntegrityError: %v", err)
		}
	})

	t.Run("missing index entries", func(t *testing.T) {
		gap := append([]time.Time(nil), times...)
		gap[2] = time.Time{}
		broken, err := X.WithIndex(table.NewTimeIndex(gap))
		if err != nil {
			t.Fatalf("WithIndex() error = %v", err)
		}
		lagger, _ := NewLagTransformer()
		_, err = lagger.Transform(broken)
		var integrity *errors.IndexIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not an IndexIntegrityError: %v", err)
		}
	})

	t.Run("freq without a time index", func(t *testing.T) {
		plain, err := table.New(series.New([]float64{1, 2, 3}, series.Float, "v"))
		if err != nil {
			t.Fatalf("table.New() error = %v", err)
		}
		lagger, _ := NewLagTransformer(WithFreq("1h"))
		_, err = lagger.Transform(plain)
		var integrity *errors.IndexIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not an IndexIntegrityError: %v", err)
		}
		if !errors.Is(err, errors.ErrNoIndex) {
			t.Errorf("error does not match ErrNoIndex: %v", err)
		}
	})

	t.Run("freq with a label index", func(t *testing.T) {
		labelled, err := table.New(series.New([]float64{1, 2, 3}, series.Float, "v"))
		if err != nil {
			t.Fatalf("table.New() error = %v", err)
		}
		labelled, err = labelled.WithIndex(table.NewLabelIndex([]string{"a", "b", "c"}))
		if err != nil {
			t.Fatalf("WithIndex() error = %v", err)
		}
		lagger, _ := NewLagTransformer(WithFreq("1h"))
		_, err = lagger.Transform(labelled)
		var integrity *errors.IndexIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not an IndexIntegrityError: %v", err)
		}
		if errors.Is(err, errors.ErrNoIndex) {
			t.Errorf("a present but non-time index should not match ErrNoIndex: %v", err)
		}
	})
}

func TestLagTransformerMissingValuesPolicy(t *testing.T) {
	X := solarFixture(t)

	t.Run("raise rejects input missing values", func(t *testing.T) {
		dirty, err := X.WithColumn(series.New(
			[]float64{49.18, math.NaN(), 52.35, 50.63, 49.61, 47.01, 46.67, 47.52},
			series.Float, "module_temp"))
		if err != nil {
			t.Fatalf("WithColumn() error = %v", err)
		}
		lagger, _ := NewLagTransformer(WithMissingValues(model.PolicyRaise), WithFillValue(0))
		_, err = lagger.Transform(dirty)
		var integrity *errors.DataIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not a DataIntegrityError: %v", err)
		}
	})

	t.Run("raise rejects boundary gaps without a fill", func(t *testing.T) {
		lagger, _ := NewLagTransformer(WithMissingValues(model.PolicyRaise))
		_, err := lagger.Transform(X)
		var integrity *errors.DataIntegrityError
		if !errors.As(err, &integrity) {
			t.Errorf("error is not a DataIntegrityError: %v", err)
		}
	})

	t.Run("raise passes with a fill", func(t *testing.T) {
		lagger, _ := NewLagTransformer(WithMissingValues(model.PolicyRaise), WithFillValue(0))
		if _, err := lagger.Transform(X); err != nil {
			t.Errorf("Transform() error = %v", err)
		}
	})
}

func TestLagTransformerEmptyTable(t *testing.T) {
	lagger, err := NewLagTransformer()
	if err != nil {
		t.Fatalf("NewLagTransformer() error = %v", err)
	}
	if _, err := lagger.Transform(nil); err == nil {
		t.Error("Transform(nil) should fail")
	}
}
