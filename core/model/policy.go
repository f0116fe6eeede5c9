package model

import "fmt"

// Policy is the closed set of behaviours for conditions that are defined but
// undesirable, such as missing values introduced by an encoding.
type Policy int

const (
	// PolicyIgnore emits a warning naming the affected columns and proceeds.
	PolicyIgnore Policy = iota
	// PolicyRaise fails the operation with a DataIntegrityError.
	PolicyRaise
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyRaise:
		return "raise"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	return p == PolicyIgnore || p == PolicyRaise
}
