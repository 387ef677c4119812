package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
)

//go:embed *.tmpl
var FS embed.FS

// Template names understood by the email worker.
const (
	Welcome         = "welcome"
	ReportSubmitted = "report_submitted"
)

// Subject returns the subject line for a known template.
func Subject(name string, data map[string]any) string {
	switch strings.ToLower(name) {
	case Welcome:
		return "Welcome to Weekly Report"
	case ReportSubmitted:
		if wk, ok := data["WeekLabel"]; ok && fmt.Sprintf("%v", wk) != "" {
			return fmt.Sprintf("Your report for %v was submitted", wk)
		}
		return "Your weekly report was submitted"
	default:
		return "Notification"
	}
}

// RenderHTML renders the named embedded template with data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
