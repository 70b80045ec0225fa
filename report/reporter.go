package report

import "fmt"

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays warnings and errors to the user.
	LogLevelVerbose        // Displays all binding messages to the user (default).
)

// Reporter is responsible for collecting errors, warnings, and other kinds of
// messages produced while binding a program.  Every compilation owns its own
// reporter: there is deliberately no global instance so that multiple
// compilations can coexist in one process.
type Reporter struct {
	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels above.
	logLevel int

	// The ordered stream of diagnostics collected so far.
	diagnostics []*Diagnostic

	// The number of error-severity diagnostics collected so far.
	errorCount int
}

// NewReporter creates a new reporter with the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{logLevel: logLevel}
}

// Diagnostics returns the ordered diagnostic stream collected so far.
func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

// ErrorCount returns the number of errors collected so far.
func (r *Reporter) ErrorCount() int {
	return r.errorCount
}

// ShouldProceed indicates whether or not there have been any errors that
// should cause binding to stop at the current phase.
func (r *Reporter) ShouldProceed() bool {
	return r.errorCount == 0
}

// Error records an error diagnostic against a module.  The span may be nil.
func (r *Reporter) Error(modName, reprPath, code string, span *TextSpan, msg string, args ...interface{}) {
	r.record(&Diagnostic{
		ModName:  modName,
		ReprPath: reprPath,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
		Severity: SevError,
		Code:     code,
	})
}

// Warning records a warning diagnostic against a module.  The span may be nil.
func (r *Reporter) Warning(modName, reprPath, code string, span *TextSpan, msg string, args ...interface{}) {
	r.record(&Diagnostic{
		ModName:  modName,
		ReprPath: reprPath,
		Span:     span,
		Message:  fmt.Sprintf(msg, args...),
		Severity: SevWarning,
		Code:     code,
	})
}

// record appends a diagnostic to the stream and displays it as the log level
// permits.
func (r *Reporter) record(d *Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)

	if d.IsError() {
		r.errorCount++

		if r.logLevel > LogLevelSilent {
			displayDiagnostic(d)
		}
	} else if r.logLevel > LogLevelError {
		displayDiagnostic(d)
	}
}

// -----------------------------------------------------------------------------

// LocalError is an analysis error raised in a context in which the module is
// known by the error handler and thus doesn't need to be passed along with the
// error.  It carries the machine-readable diagnostic code.
type LocalError struct {
	// The error message.
	Message string

	// The machine-readable diagnostic code.
	Code string

	// The span over which the error occurs.
	Span *TextSpan
}

func (le *LocalError) Error() string {
	return le.Message
}

// Raise creates a new local analysis error.
func Raise(code string, span *TextSpan, msg string, args ...interface{}) *LocalError {
	return &LocalError{Message: fmt.Sprintf(msg, args...), Code: code, Span: span}
}

// CatchErrors catches any errors thrown by a `panic` while analyzing a single
// statement.  In effect, this handler determines when any errors
// "unrecoverable" within a given statement should stop bubbling: analysis
// resumes with the next statement rather than aborting the whole run.
// NB: This function must ALWAYS be deferred.
func (r *Reporter) CatchErrors(modName, reprPath string) {
	if x := recover(); x != nil {
		if lerr, ok := x.(*LocalError); ok {
			r.Error(modName, reprPath, lerr.Code, lerr.Span, "%s", lerr.Message)
		} else if serr, ok := x.(error); ok {
			r.Error(modName, reprPath, CodeInternal, nil, "internal binder error: %s", serr)
		} else {
			r.Error(modName, reprPath, CodeInternal, nil, "internal binder error: %v", x)
		}
	}
}
