package model

import "fmt"

// Severity — уровень диагностики
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Коды диагностик
const (
	DiagNonTableField = "non_table_field"
	DiagInvalidShort  = "invalid_short"
	DiagIgnoredKey    = "ignored_key"
	DiagInferredText  = "inferred_text"
)

// Diagnostic — некритичная проблема схемы. Разрешение продолжается.
type Diagnostic struct {
	Severity  Severity
	Code      string
	Message   string
	FieldPath string
}

func (d Diagnostic) String() string {
	if d.FieldPath == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.FieldPath, d.Code, d.Message)
}

// Warnings возвращает только предупреждения
func (t *Tree) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range t.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
