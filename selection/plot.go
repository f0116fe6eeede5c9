package selection

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/feago/pkg/errors"
)

// SaveImportanceChart renders feature importances as a bar chart and writes
// it to path. The image format follows the file extension (.png, .svg,
// .pdf). Features are drawn in descending importance order.
func SaveImportanceChart(importances map[string]float64, title, path string) error {
	if len(importances) == 0 {
		return errors.NewValueError("SaveImportanceChart", "no importances to plot")
	}

	names := make([]string, 0, len(importances))
	for name := range importances {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if importances[names[i]] != importances[names[j]] {
			return importances[names[i]] > importances[names[j]]
		}
		return names[i] < names[j]
	})

	values := make(plotter.Values, len(names))
	for i, name := range names {
		values[i] = importances[name]
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "importance"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return errors.Wrap(err, "SaveImportanceChart")
	}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrap(err, "SaveImportanceChart")
	}
	return nil
}
