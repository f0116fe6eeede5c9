// Package feago provides scikit-learn-style feature engineering for Go:
// discretisers, categorical encoders, a target-mean predictor, feature
// selectors and time-series lag transformers over in-memory tables.
//
// Every transformer follows the fit/transform contract: Fit learns
// parameters from a training table, Transform applies the learned,
// deterministic mapping to new data. Fitted state is immutable; Transform
// and Predict may be called repeatedly and concurrently.
//
// # Packages
//
//   - table: the tabular data model (gota-backed columns plus a row index)
//   - discretisation: equal-width and equal-frequency binning
//   - encoding: target-mean and weight-of-evidence encoders
//   - prediction: the target-mean regressor pipeline
//   - timeseries: lag features for forecasting
//   - selection: information-value and probe feature selectors
//
// # Quick start
//
//	city := series.New([]string{"London", "Bristol", "London"}, series.String, "City")
//	age := series.New([]float64{25, 40, 31}, series.Float, "Age")
//	X, _ := table.New(city, age)
//
//	predictor, _ := prediction.NewTargetMeanRegressor(prediction.WithBins(5))
//	if err := predictor.Fit(X, []float64{0.8, 0.1, 0.5}); err != nil {
//	    log.Fatal(err)
//	}
//	preds, _ := predictor.Predict(X)
package feago
