package reportform

import (
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

func TestNewStartsWithOneRowPerSection(t *testing.T) {
	f := New(time.Now())
	if len(f.TasksCompleted) != 1 || len(f.WorkInProgress) != 1 || len(f.Challenges) != 1 {
		t.Fatalf("expected one row per section, got %d/%d/%d",
			len(f.TasksCompleted), len(f.WorkInProgress), len(f.Challenges))
	}
	if f.TasksCompleted[0].Priority != entity.PriorityMedium {
		t.Errorf("new task row priority = %q, want Medium", f.TasksCompleted[0].Priority)
	}
	if f.Progress() != 0 {
		t.Errorf("empty form progress = %d, want 0", f.Progress())
	}
}

func TestProgressCountsFilledSections(t *testing.T) {
	f := New(time.Now())

	f.TasksCompleted[0].Title = "shipped a thing"
	if got := f.Progress(); got != 16 {
		t.Errorf("one section = %d, want 16", got)
	}

	f.WorkInProgress[0].Title = "half a thing"
	f.Challenges[0].Description = "the thing fought back"
	if got := f.Progress(); got != 50 {
		t.Errorf("three sections = %d, want 50", got)
	}

	f.Improvements = "learned"
	f.NextWeekPlan = "more things"
	f.Summary = "good week"
	if got := f.Progress(); got != 100 {
		t.Errorf("all sections = %d, want 100", got)
	}
}

func TestProgressIgnoresWhitespaceOnlyRows(t *testing.T) {
	f := New(time.Now())
	f.TasksCompleted[0].Title = "   "
	f.Summary = "\t"
	if got := f.Progress(); got != 0 {
		t.Errorf("whitespace-only progress = %d, want 0", got)
	}
}

func TestRowManagement(t *testing.T) {
	f := New(time.Now())

	f.AddCompletedTask()
	f.AddCompletedTask()
	if len(f.TasksCompleted) != 3 {
		t.Fatalf("rows after two adds = %d, want 3", len(f.TasksCompleted))
	}

	f.RemoveCompletedTask(1)
	if len(f.TasksCompleted) != 2 {
		t.Fatalf("rows after remove = %d, want 2", len(f.TasksCompleted))
	}

	// The last row can never be removed.
	f.RemoveCompletedTask(0)
	f.RemoveCompletedTask(0)
	if len(f.TasksCompleted) != 1 {
		t.Errorf("rows after removing everything = %d, want 1", len(f.TasksCompleted))
	}

	// Out-of-range indexes are ignored.
	f.AddChallenge()
	f.RemoveChallenge(99)
	f.RemoveChallenge(-1)
	if len(f.Challenges) != 2 {
		t.Errorf("challenge rows = %d, want 2", len(f.Challenges))
	}
}

func TestSubmitGate(t *testing.T) {
	f := New(time.Now())

	if _, err := f.Payload(entity.StatusDraft); err != nil {
		t.Fatalf("draft save of empty form should pass, got %v", err)
	}

	if _, err := f.Payload(entity.StatusSubmitted); !errors.Is(err, ErrNoCompletedTasks) {
		t.Fatalf("submit without tasks = %v, want ErrNoCompletedTasks", err)
	}

	f.TasksCompleted[0].Title = "did work"
	if _, err := f.Payload(entity.StatusSubmitted); !errors.Is(err, ErrNoSummary) {
		t.Fatalf("submit without summary = %v, want ErrNoSummary", err)
	}

	if f.Submittable() {
		t.Error("form without summary reported submittable")
	}

	f.Summary = "a week"
	if !f.Submittable() {
		t.Error("complete form reported not submittable")
	}
	p, err := f.Payload(entity.StatusSubmitted)
	if err != nil {
		t.Fatalf("complete submit failed: %v", err)
	}
	if p.Status != entity.StatusSubmitted {
		t.Errorf("payload status = %q", p.Status)
	}
}

func TestPayloadFiltersBlankRows(t *testing.T) {
	f := New(time.Now())
	f.TasksCompleted = []entity.Task{
		{Title: "real"},
		{Title: "  "},
		{Title: ""},
	}
	f.Challenges = []entity.Challenge{{Description: ""}, {Description: "hard bug"}}

	p, err := f.Payload(entity.StatusDraft)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.TasksCompleted) != 1 {
		t.Errorf("filtered tasks = %d, want 1", len(p.TasksCompleted))
	}
	if p.TasksCompleted[0].Priority != entity.PriorityMedium {
		t.Errorf("default priority = %q, want Medium", p.TasksCompleted[0].Priority)
	}
	if len(p.Challenges) != 1 || p.Challenges[0].Description != "hard bug" {
		t.Errorf("filtered challenges = %+v", p.Challenges)
	}
}

func TestFromReportPinsWeekDates(t *testing.T) {
	start, end := WeekRange(time.Now(), -2)
	r := &entity.Report{WeekStartDate: start, WeekEndDate: end, Status: entity.StatusDraft}

	f := FromReport(r)
	f.SetWeekOffset(time.Now(), 5)
	if !f.WeekStartDate.Equal(start) || !f.WeekEndDate.Equal(end) {
		t.Error("editing an existing draft must not move its week window")
	}
	if len(f.TasksCompleted) != 1 {
		t.Errorf("bound form should show one empty row, got %d", len(f.TasksCompleted))
	}

	// A fresh form is still navigable.
	nf := New(time.Now())
	before := nf.WeekStartDate
	nf.SetWeekOffset(time.Now(), 1)
	if nf.WeekStartDate.Equal(before) {
		t.Error("fresh form week window should move with the offset")
	}
}
