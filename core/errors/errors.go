// Package errors provides standardized error types and helpers for the LiteWalk codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidFormat indicates the file is not a valid SQLite database
	ErrInvalidFormat = errors.New("invalid database format")
	// ErrIO indicates a file access failure
	ErrIO = errors.New("i/o error")
	// ErrMalformedRecord indicates a record whose header and body disagree
	ErrMalformedRecord = errors.New("malformed record")
	// ErrOverflow indicates a payload that spills to overflow pages
	ErrOverflow = errors.New("overflow pages not supported")
	// ErrUnterminated indicates a string literal with no closing quote
	ErrUnterminated = errors.New("unterminated string literal")
	// ErrParse indicates a statement that does not match the grammar
	ErrParse = errors.New("parse error")
	// ErrUnknownTable indicates a table name missing from the schema
	ErrUnknownTable = errors.New("unknown table")
	// ErrUnknownColumn indicates a column name missing from a table
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnsupportedExpr indicates a recognized but unsupported expression form
	ErrUnsupportedExpr = errors.New("unsupported expression")
)

// FormatError represents an invalid or corrupt database file with context
type FormatError struct {
	Path   string // File path, if applicable
	Detail string // What was wrong (e.g., "bad magic string")
	Err    error  // Underlying error, if any
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid database format in %s: %s", e.Path, e.Detail)
	}
	return fmt.Sprintf("invalid database format: %s", e.Detail)
}

func (e *FormatError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidFormat
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "open", "seek")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrIO
}

// RecordError represents a record that cannot be decoded
type RecordError struct {
	Reason string // What failed (e.g., "body overruns payload")
	Err    error  // Underlying error, if any
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record: %s", e.Reason)
}

func (e *RecordError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMalformedRecord
}

// OverflowError represents a payload too large to be stored locally
type OverflowError struct {
	Rowid       int64 // Row whose payload spills, if known
	PayloadSize int64 // Declared payload size in bytes
	MaxLocal    int   // Largest payload that fits on the page
}

func (e *OverflowError) Error() string {
	if e.Rowid != 0 {
		return fmt.Sprintf("row %d payload of %d bytes exceeds local maximum %d: overflow pages not supported",
			e.Rowid, e.PayloadSize, e.MaxLocal)
	}
	return fmt.Sprintf("payload of %d bytes exceeds local maximum %d: overflow pages not supported",
		e.PayloadSize, e.MaxLocal)
}

func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

// UnterminatedError represents a string literal missing its closing quote
type UnterminatedError struct {
	Position int // Byte offset of the opening quote
}

func (e *UnterminatedError) Error() string {
	return fmt.Sprintf("unterminated string literal at position %d", e.Position)
}

func (e *UnterminatedError) Unwrap() error {
	return ErrUnterminated
}

// ParseError represents a statement that does not match the grammar
type ParseError struct {
	Expected string // What the parser expected (e.g., "FROM", "table name")
	Found    string // What was found instead
	Position int    // Byte offset of the offending token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s, found %s at position %d", e.Expected, e.Found, e.Position)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// UnknownTableError represents a table name absent from the schema
type UnknownTableError struct {
	Table string // Name as written in the statement
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("no such table: %s", e.Table)
}

func (e *UnknownTableError) Unwrap() error {
	return ErrUnknownTable
}

// UnknownColumnError represents a column name absent from a table
type UnknownColumnError struct {
	Column string // Name as written in the statement
	Table  string // Table it was resolved against
}

func (e *UnknownColumnError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("no such column: %s in table %s", e.Column, e.Table)
	}
	return fmt.Sprintf("no such column: %s", e.Column)
}

func (e *UnknownColumnError) Unwrap() error {
	return ErrUnknownColumn
}

// ExprError represents an expression form the executor cannot evaluate
type ExprError struct {
	Expr   string // Expression text (e.g., "UPPER(name)")
	Reason string // Why it cannot be evaluated
}

func (e *ExprError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported expression %s: %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("unsupported expression %s", e.Expr)
}

func (e *ExprError) Unwrap() error {
	return ErrUnsupportedExpr
}

// Helper functions for creating common errors

// NewFormat creates a FormatError
func NewFormat(path, detail string) *FormatError {
	return &FormatError{
		Path:   path,
		Detail: detail,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewRecord creates a RecordError
func NewRecord(reason string) *RecordError {
	return &RecordError{
		Reason: reason,
	}
}

// NewOverflow creates an OverflowError
func NewOverflow(rowid, payloadSize int64, maxLocal int) *OverflowError {
	return &OverflowError{
		Rowid:       rowid,
		PayloadSize: payloadSize,
		MaxLocal:    maxLocal,
	}
}

// NewUnterminated creates an UnterminatedError
func NewUnterminated(position int) *UnterminatedError {
	return &UnterminatedError{
		Position: position,
	}
}

// NewParse creates a ParseError
func NewParse(expected, found string, position int) *ParseError {
	return &ParseError{
		Expected: expected,
		Found:    found,
		Position: position,
	}
}

// NewUnknownTable creates an UnknownTableError
func NewUnknownTable(table string) *UnknownTableError {
	return &UnknownTableError{
		Table: table,
	}
}

// NewUnknownColumn creates an UnknownColumnError
func NewUnknownColumn(column, table string) *UnknownColumnError {
	return &UnknownColumnError{
		Column: column,
		Table:  table,
	}
}

// NewExpr creates an ExprError
func NewExpr(expr, reason string) *ExprError {
	return &ExprError{
		Expr:   expr,
		Reason: reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
