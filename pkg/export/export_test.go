package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

func sampleReport() *entity.Report {
	hours := 3.5
	submitted := time.Date(2026, time.September, 3, 10, 0, 0, 0, time.UTC)
	return &entity.Report{
		ID:            "r1",
		UserID:        "u1",
		WeekStartDate: time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC),
		WeekEndDate:   time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		TasksCompleted: []entity.Task{
			{Title: "Implemented export pipeline", TimeSpent: &hours, Priority: entity.PriorityHigh},
		},
		WorkInProgress: []entity.Task{{Title: "Search indexing"}},
		Challenges:     []entity.Challenge{{Description: "Flaky CI", Solution: "Pinned runners"}},
		Improvements:   "Better code review notes",
		NextWeekPlan:   "Ship search",
		Summary:        "Solid delivery week",
		Status:         entity.StatusSubmitted,
		SubmittedAt:    &submitted,
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"pdf", "doc"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", s, err)
		}
		if string(f) != s {
			t.Errorf("ParseFormat(%q) = %q", s, f)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("ParseFormat(xlsx) should fail")
	}
	if _, err := ParseFormat(""); err == nil {
		t.Error("ParseFormat of empty string should fail")
	}
}

func TestFilename(t *testing.T) {
	r := sampleReport()
	if got := FormatPDF.Filename(r); got != "weekly-report-2026-08-29.pdf" {
		t.Errorf("pdf filename = %q", got)
	}
	if got := FormatWord.Filename(r); got != "weekly-report-2026-08-29.doc" {
		t.Errorf("doc filename = %q", got)
	}
}

func TestWordContainsSections(t *testing.T) {
	data, err := Word(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)

	for _, want := range []string{
		"Weekly Work Report",
		"August 29, 2026",
		"SUBMITTED",
		"Implemented export pipeline",
		"3.5h",
		"Flaky CI",
		"Solution: Pinned runners",
		"Next Week Plan",
		"Solid delivery week",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("word output missing %q", want)
		}
	}
}

func TestWordOmitsEmptySections(t *testing.T) {
	r := sampleReport()
	r.Status = entity.StatusDraft
	r.SubmittedAt = nil
	r.Challenges = nil
	r.Improvements = ""
	r.Summary = ""

	data, err := Word(r)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)

	if !strings.Contains(doc, "DRAFT") {
		t.Error("draft badge missing")
	}
	for _, absent := range []string{"Challenges", "Improvements", "Summary"} {
		if strings.Contains(doc, absent) {
			t.Errorf("word output should omit empty section %q", absent)
		}
	}
}

func TestPDFRenders(t *testing.T) {
	data, err := PDF(sampleReport())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestPDFRendersMinimalReport(t *testing.T) {
	r := &entity.Report{
		WeekStartDate: time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC),
		WeekEndDate:   time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		Status:        entity.StatusDraft,
	}
	data, err := Render(r, FormatPDF)
	if err != nil {
		t.Fatalf("minimal report should still render: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty output")
	}
}

func TestContentType(t *testing.T) {
	if got := FormatPDF.ContentType(); got != "application/pdf" {
		t.Errorf("pdf content type = %q", got)
	}
	if got := FormatWord.ContentType(); got != "application/msword" {
		t.Errorf("doc content type = %q", got)
	}
}
