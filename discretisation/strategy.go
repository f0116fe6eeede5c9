package discretisation

import "fmt"

// Strategy selects how interval edges are derived from the training data.
type Strategy int

const (
	// EqualWidth divides the training range into intervals of equal length.
	EqualWidth Strategy = iota
	// EqualFrequency places the edges at the empirical quantiles.
	EqualFrequency
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case EqualWidth:
		return "equal-width"
	case EqualFrequency:
		return "equal-frequency"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined strategies.
func (s Strategy) Valid() bool {
	return s == EqualWidth || s == EqualFrequency
}
