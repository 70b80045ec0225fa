package report

// Enumeration of diagnostic severities.
const (
	SevError = iota
	SevWarning
)

// Enumeration of machine-readable diagnostic codes.  These are stable strings
// intended for consumption by external tooling; the human-readable message may
// change freely, the code may not.
const (
	CodeUnresolvedName = "unresolved-name" // name never resolved; possible cyclic definition
	CodeRedefinition   = "redefinition"    // conflicting redefinition of an existing name
	CodeStructural     = "structural"      // malformed definition (eg. conflicting bases)
	CodeNotAType       = "not-a-type"      // value used where a type is required
	CodeBadEscape      = "bad-escape"      // invalid outer-scope escape declaration
	CodeInternal       = "internal"        // internal binder error; not a user error
	CodeHangGuard      = "iteration-cap"   // resolution failed to converge within the cap
	CodeImport         = "import"          // unresolved or conflicting import
	CodeArgCount       = "wrong-arg-count" // wrong number of type arguments
	CodeModuleManifest = "module-manifest" // malformed module manifest
)

// Diagnostic is a single message produced while binding a program.  The
// diagnostic stream (the ordered list of these) is part of the binder's
// output.
type Diagnostic struct {
	// The name of the module the diagnostic was produced in.
	ModName string

	// The representative path of the offending source file.  May be empty when
	// the module was constructed in memory.
	ReprPath string

	// The span of the offending source text.  May be nil when no position is
	// known.
	Span *TextSpan

	// The human-readable message.
	Message string

	// The severity of the diagnostic.  Must be one of the enumerated
	// severities.
	Severity int

	// The machine-readable code.  Must be one of the enumerated codes.
	Code string
}

// IsError returns whether the diagnostic is an error.
func (d *Diagnostic) IsError() bool {
	return d.Severity == SevError
}
