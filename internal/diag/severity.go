package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Severity of a code. Every kind the pipeline reports stops code generation,
// so all of them are errors; unknown codes are informational.
func (c Code) Severity() Severity {
	if _, ok := codeDescription[c]; ok && c != UnknownCode {
		return SevError
	}
	return SevInfo
}
