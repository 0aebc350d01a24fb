package web

import (
	"html/template"
	"strings"
	"time"
)

// Date layouts for the datetime template function.
const (
	LayoutFull   = "Monday January, 2, 2006 at 3:04PM"
	LayoutMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDatetime renders t in the "full" or "medium" style; any other
// format name falls back to medium.
func FormatDatetime(format string, t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if format == "full" {
		return t.Format(LayoutFull)
	}
	return t.Format(LayoutMedium)
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDatetime,
		"join":     func(sep string, xs []string) string { return strings.Join(xs, sep) },
		"contains": func(xs []string, s string) bool {
			for _, x := range xs {
				if x == s {
					return true
				}
			}
			return false
		},
		"inputTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04:05")
		},
	}
}
