// Package errors provides the error handling and warning system used across
// the whole project. Validation failures are raised as typed, structured
// errors at the boundary of the call that detected them, while advisory
// conditions are delivered through a global warning handler.
package errors

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================

var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// Default handler logs to standard error.
		log.Printf("FeaGo-Warning: %v\n", w)
	}
	// zerolog sink (set lazily to avoid an import cycle with pkg/log)
	zerologWarnFunc func(warning error)
)

// SetWarningHandler sets the warning handler for the whole library.
// Transformers emit non-fatal warnings (for example when encoding introduces
// missing values under the Ignore policy); this controls where they go.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // drop all warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs a zerolog-backed warning sink. Kept separate
// from SetWarningHandler to avoid an import cycle with pkg/log.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn emits a warning. When a zerolog sink is installed it takes
// precedence; otherwise the plain handler is used.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warning types
//
// ===========================================================================

// UnseenValueWarning is emitted when a transform introduces missing values
// because categories or bins present in the data were never observed during
// fit, and the transformer's policy is set to Ignore.
type UnseenValueWarning struct {
	Transformer string
	Columns     []string
}

func (w *UnseenValueWarning) Error() string {
	return fmt.Sprintf("%s: NaN values were introduced in the variable(s) %s",
		w.Transformer, strings.Join(w.Columns, ", "))
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *UnseenValueWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("transformer", w.Transformer).
		Strs("columns", w.Columns).
		Str("type", "UnseenValueWarning")
}

// NewUnseenValueWarning creates a new UnseenValueWarning. The affected
// columns are reported in a stable, sorted order.
func NewUnseenValueWarning(transformer string, columns []string) *UnseenValueWarning {
	cols := append([]string(nil), columns...)
	sort.Strings(cols)
	return &UnseenValueWarning{Transformer: transformer, Columns: cols}
}

// DroppedBinWarning is emitted by the equal-frequency discretiser when
// duplicate quantile edges collapse and fewer bins than requested remain.
type DroppedBinWarning struct {
	Variable  string
	Requested int
	Got       int
}

func (w *DroppedBinWarning) Error() string {
	return fmt.Sprintf("variable '%s': duplicate quantile edges were dropped, %d bins remain of the %d requested",
		w.Variable, w.Got, w.Requested)
}

// MarshalZerologObject adds the structured warning fields to a zerolog event.
func (w *DroppedBinWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("variable", w.Variable).
		Int("requested", w.Requested).
		Int("got", w.Got).
		Str("type", "DroppedBinWarning")
}

// NewDroppedBinWarning creates a new DroppedBinWarning.
func NewDroppedBinWarning(variable string, requested, got int) *DroppedBinWarning {
	return &DroppedBinWarning{Variable: variable, Requested: requested, Got: got}
}

// ===========================================================================
//
//	Structured error types
//
// ===========================================================================

// NotFittedError is returned when Transform or Predict is called on a
// transformer that has not been fitted.
type NotFittedError struct {
	TransformerName string
	Method          string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("feago: %s: this transformer is not fitted yet. Call Fit() before using %s()",
		e.TransformerName, e.Method)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("transformer", e.TransformerName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(transformerName, method string) error {
	err := &NotFittedError{TransformerName: transformerName, Method: method}
	return errors.WithStack(err)
}

// ConfigurationError is returned when a constructor argument is invalid.
// It is raised eagerly at construction, before any data is seen.
type ConfigurationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("feago: invalid configuration for parameter '%s': %s (got: %v)",
		e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a new ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// SchemaMismatchError is returned when the table passed to Transform or
// Predict disagrees with the table seen at fit time, either in column count
// or in the role (categorical/numerical) of a column.
type SchemaMismatchError struct {
	Op       string
	Column   string // offending column, empty when the mismatch is the column count
	Expected interface{}
	Got      interface{}
}

func (e *SchemaMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("feago: %s: column '%s' does not match the fitted schema. Expected %v, got %v",
			e.Op, e.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("feago: %s: table does not match the fitted schema. Expected %v, got %v",
		e.Op, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Interface("expected", e.Expected).
		Interface("got", e.Got).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError creates a new SchemaMismatchError with a stack trace.
func NewSchemaMismatchError(op, column string, expected, got interface{}) error {
	err := &SchemaMismatchError{Op: op, Column: column, Expected: expected, Got: got}
	return errors.WithStack(err)
}

// IndexIntegrityError is returned by transformers that align rows by index
// when the index contains missing entries or duplicate values. Shifting or
// merging on such an index would silently duplicate or misplace rows.
type IndexIntegrityError struct {
	Op     string
	Reason string
}

func (e *IndexIntegrityError) Error() string {
	return fmt.Sprintf("feago: %s: %s. Only tables with complete, unique indexes are compatible with this transformer",
		e.Op, e.Reason)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *IndexIntegrityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Str("type", "IndexIntegrityError")
}

// NewIndexIntegrityError creates a new IndexIntegrityError with a stack trace.
func NewIndexIntegrityError(op, reason string) error {
	err := &IndexIntegrityError{Op: op, Reason: reason}
	return errors.WithStack(err)
}

// DataIntegrityError is returned when a transform introduces or finds
// missing values and the transformer's policy is set to Raise. The affected
// columns are always named.
type DataIntegrityError struct {
	Op      string
	Columns []string
	Reason  string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("feago: %s: %s in the variable(s) %s",
		e.Op, e.Reason, strings.Join(e.Columns, ", "))
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DataIntegrityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("columns", e.Columns).
		Str("reason", e.Reason).
		Str("type", "DataIntegrityError")
}

// NewDataIntegrityError creates a new DataIntegrityError with a stack trace.
// The affected columns are reported in a stable, sorted order.
func NewDataIntegrityError(op, reason string, columns []string) error {
	cols := append([]string(nil), columns...)
	sort.Strings(cols)
	err := &DataIntegrityError{Op: op, Columns: cols, Reason: reason}
	return errors.WithStack(err)
}

// ModelError is a general error raised by a transformer or predictor.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("feago: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("feago: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ValueError is returned when an argument value is out of range or otherwise
// unusable for the requested computation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("feago: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// Mark associates err with a reference error, so that Is(err, reference)
// reports true without changing the message.
func Mark(err, reference error) error {
	return errors.Mark(err, reference)
}

// ===========================================================================
//
//	Common error values
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty table or vector is passed in.
	ErrEmptyData = New("empty data")

	// ErrNoIndex marks errors returned when a transformer that aligns rows
	// by index receives a table without one.
	ErrNoIndex = New("table has no index")
)
