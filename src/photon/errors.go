package photon

import "fmt"

// MissingArgumentMessage is printed when the CLI is started without an input path.
const MissingArgumentMessage = "No filename supplied. Exiting..."

// MissingArgumentError reports that no input file path was supplied.
type MissingArgumentError struct{}

func (MissingArgumentError) Error() string { return MissingArgumentMessage }

// FormatError reports input that does not follow the measurement file layout:
// a malformed metadata line, a non-integer inside the statistics window, or
// fewer data lines than the header declares. Line is 1-based; 0 means the
// error is not tied to a single line.
type FormatError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	where := e.Path
	if where == "" {
		where = "input"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("format error: %s: %s: %v", where, e.Reason, e.Err)
	}
	return fmt.Sprintf("format error: %s: %s", where, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ArithmeticError reports a computation that has no finite result, such as
// normalizing by zero measurements.
type ArithmeticError struct {
	Op     string
	Reason string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %s: %s", e.Op, e.Reason)
}
