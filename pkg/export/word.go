package export

import (
	"bytes"
	htmpl "html/template"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

// Word export emits an HTML-flavoured .doc document, the same trick the
// web client uses; Word opens it natively. No OOXML library is involved.
var wordTmpl = htmpl.Must(htmpl.New("doc").Funcs(htmpl.FuncMap{
	"date":      formatDate,
	"timeSpent": formatTimeSpent,
	"priority":  orMedium,
	"inc":       func(i int) int { return i + 1 },
}).Parse(`<html xmlns:w="urn:schemas-microsoft-com:office:word">
<head><meta charset="utf-8"><title>Weekly Work Report</title></head>
<body style="font-family: Calibri, Arial, sans-serif;">
<h1 style="color:#9333ea;">Weekly Work Report</h1>
<p><strong>{{date .WeekStartDate}} - {{date .WeekEndDate}}</strong></p>
<p>Status: <strong>{{if .IsSubmitted}}SUBMITTED{{else}}DRAFT{{end}}</strong></p>
{{if .Summary}}<h2>Summary</h2><p>{{.Summary}}</p>{{end}}
{{if .TasksCompleted}}<h2>Tasks Completed</h2>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
<tr style="background:#9333ea;color:#fff;"><th>#</th><th>Task</th><th>Time</th><th>Priority</th></tr>
{{range $i, $t := .TasksCompleted}}<tr><td>{{inc $i}}</td><td>{{$t.Title}}</td><td>{{timeSpent $t.TimeSpent}}</td><td>{{priority $t.Priority}}</td></tr>
{{end}}</table>{{end}}
{{if .WorkInProgress}}<h2>Work In Progress</h2>
<table border="1" cellspacing="0" cellpadding="4" width="100%">
<tr style="background:#9333ea;color:#fff;"><th>#</th><th>Task</th><th>Time</th><th>Priority</th></tr>
{{range $i, $t := .WorkInProgress}}<tr><td>{{inc $i}}</td><td>{{$t.Title}}</td><td>{{timeSpent $t.TimeSpent}}</td><td>{{priority $t.Priority}}</td></tr>
{{end}}</table>{{end}}
{{if .Challenges}}<h2>Challenges</h2>
<ol>{{range .Challenges}}<li><p>{{.Description}}</p>{{if .Solution}}<p><em>Solution: {{.Solution}}</em></p>{{end}}</li>{{end}}</ol>{{end}}
{{if .Improvements}}<h2>Improvements &amp; Learnings</h2><p>{{.Improvements}}</p>{{end}}
{{if .NextWeekPlan}}<h2>Next Week Plan</h2><p>{{.NextWeekPlan}}</p>{{end}}
</body>
</html>`))

// Word renders the report as a Word-compatible document.
func Word(r *entity.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := wordTmpl.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
