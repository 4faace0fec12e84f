package diag

// Severity orders diagnostics from least to most serious.
type Severity uint8

const (
	SevInfo    Severity = iota // timings, fallbacks to generic rendering
	SevWarning                 // check mode found a difference
	SevError                   // the file could not be reprinted
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
