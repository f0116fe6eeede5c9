// Package variables resolves which columns a transformer operates on.
//
// A transformer is configured either with an explicit list of variables or
// with none, in which case the variables are discovered from the table's
// schema at fit time. Either way the resolved list is validated against the
// table before any statistic is learned.
package variables

import (
	"github.com/YuminosukeSato/feago/pkg/errors"
	"github.com/YuminosukeSato/feago/table"
)

// FindCategoricalAndNumerical splits the declared variables by role. With no
// declared variables, every column of the table is classified. Unknown
// columns fail with a ConfigurationError.
func FindCategoricalAndNumerical(t *table.Table, declared []string) (categorical, numerical []string, err error) {
	names := declared
	if len(names) == 0 {
		names = t.Names()
	}
	for _, name := range names {
		role, err := t.Role(name)
		if err != nil {
			return nil, nil, errors.NewConfigurationError("variables",
				"variable not present in the table", name)
		}
		if role == table.Categorical {
			categorical = append(categorical, name)
		} else {
			numerical = append(numerical, name)
		}
	}
	return categorical, numerical, nil
}

// CheckNumerical resolves and validates the numerical variables a
// transformer acts on. With no declared variables, all numerical columns are
// selected; a table without any fails with a ConfigurationError. Declared
// variables must exist and be numerical.
func CheckNumerical(t *table.Table, declared []string) ([]string, error) {
	return checkRole(t, declared, table.Numerical)
}

// CheckCategorical resolves and validates the categorical variables a
// transformer acts on, with the same rules as CheckNumerical.
func CheckCategorical(t *table.Table, declared []string) ([]string, error) {
	return checkRole(t, declared, table.Categorical)
}

func checkRole(t *table.Table, declared []string, want table.Role) ([]string, error) {
	if len(declared) == 0 {
		var found []string
		roles := t.Roles()
		for _, name := range t.Names() {
			if roles[name] == want {
				found = append(found, name)
			}
		}
		if len(found) == 0 {
			return nil, errors.NewConfigurationError("variables",
				"no "+want.String()+" variables found in the table", nil)
		}
		return found, nil
	}

	for _, name := range declared {
		role, err := t.Role(name)
		if err != nil {
			return nil, errors.NewConfigurationError("variables",
				"variable not present in the table", name)
		}
		if role != want {
			return nil, errors.NewConfigurationError("variables",
				"variable is not "+want.String(), name)
		}
	}
	return append([]string(nil), declared...), nil
}
