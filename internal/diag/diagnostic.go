package diag

import (
	"fmt"

	"reprint/internal/source"
)

type Note struct {
	Range source.Range
	Msg   string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Path     string
	Primary  source.Range
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Range, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Range, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(r source.Range, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Range: r, Msg: msg})
	return d
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	if d.Path == "" {
		return fmt.Sprintf("%d:%d: %s", d.Primary.Start.Line, d.Primary.Start.Column+1, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.Path, d.Primary.Start.Line, d.Primary.Start.Column+1, d.Message)
}
