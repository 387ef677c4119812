// Package reportform holds the in-memory form state behind the report
// editor: repeatable task and challenge rows, the Saturday-anchored week
// window, and the completeness gate applied before a submit (never before
// a draft save).
package reportform

import (
	"errors"
	"strings"
	"time"

	"github.com/oksasatya/weekly-report-api/internal/domain/entity"
)

var (
	// ErrNoCompletedTasks blocks a submit with zero non-blank completed tasks.
	ErrNoCompletedTasks = errors.New("at least one completed task is required to submit")
	// ErrNoSummary blocks a submit without a summary.
	ErrNoSummary = errors.New("a summary is required to submit")
)

const sectionCount = 6

// Form mirrors the report shape while the user edits it. Rows may be
// blank; blanks are filtered out when the payload is built. The form
// always keeps at least one visible row per section.
type Form struct {
	WeekStartDate  time.Time
	WeekEndDate    time.Time
	TasksCompleted []entity.Task
	WorkInProgress []entity.Task
	Challenges     []entity.Challenge
	Improvements   string
	NextWeekPlan   string
	Summary        string

	// editingDraft pins the week dates; once a draft exists its window
	// is no longer navigable.
	editingDraft bool
}

// Payload is what the form submits to the lifecycle API.
type Payload struct {
	WeekStartDate  time.Time
	WeekEndDate    time.Time
	TasksCompleted []entity.Task
	WorkInProgress []entity.Task
	Challenges     []entity.Challenge
	Improvements   string
	NextWeekPlan   string
	Summary        string
	Status         string
}

// New returns a form for the current week with one empty row per section.
func New(now time.Time) *Form {
	f := &Form{
		TasksCompleted: []entity.Task{{Priority: entity.PriorityMedium}},
		WorkInProgress: []entity.Task{{Priority: entity.PriorityMedium}},
		Challenges:     []entity.Challenge{{}},
	}
	f.WeekStartDate, f.WeekEndDate = WeekRange(now, 0)
	return f
}

// FromReport binds an existing draft for editing. Its dates become
// immutable for the rest of the session.
func FromReport(r *entity.Report) *Form {
	f := &Form{
		WeekStartDate:  r.WeekStartDate,
		WeekEndDate:    r.WeekEndDate,
		TasksCompleted: append([]entity.Task(nil), r.TasksCompleted...),
		WorkInProgress: append([]entity.Task(nil), r.WorkInProgress...),
		Challenges:     append([]entity.Challenge(nil), r.Challenges...),
		Improvements:   r.Improvements,
		NextWeekPlan:   r.NextWeekPlan,
		Summary:        r.Summary,
		editingDraft:   true,
	}
	if len(f.TasksCompleted) == 0 {
		f.TasksCompleted = []entity.Task{{Priority: entity.PriorityMedium}}
	}
	if len(f.WorkInProgress) == 0 {
		f.WorkInProgress = []entity.Task{{Priority: entity.PriorityMedium}}
	}
	if len(f.Challenges) == 0 {
		f.Challenges = []entity.Challenge{{}}
	}
	return f
}

// SetWeekOffset moves the form to another week window, unless the form
// is bound to an existing draft.
func (f *Form) SetWeekOffset(now time.Time, offset int) {
	if f.editingDraft {
		return
	}
	f.WeekStartDate, f.WeekEndDate = WeekRange(now, offset)
}

func (f *Form) AddCompletedTask() {
	f.TasksCompleted = append(f.TasksCompleted, entity.Task{Priority: entity.PriorityMedium})
}

// RemoveCompletedTask drops row i but never the last visible row.
func (f *Form) RemoveCompletedTask(i int) {
	f.TasksCompleted = removeTask(f.TasksCompleted, i)
}

func (f *Form) AddWIPTask() {
	f.WorkInProgress = append(f.WorkInProgress, entity.Task{Priority: entity.PriorityMedium})
}

func (f *Form) RemoveWIPTask(i int) {
	f.WorkInProgress = removeTask(f.WorkInProgress, i)
}

func (f *Form) AddChallenge() {
	f.Challenges = append(f.Challenges, entity.Challenge{})
}

func (f *Form) RemoveChallenge(i int) {
	if len(f.Challenges) <= 1 || i < 0 || i >= len(f.Challenges) {
		return
	}
	f.Challenges = append(f.Challenges[:i], f.Challenges[i+1:]...)
}

func removeTask(tasks []entity.Task, i int) []entity.Task {
	if len(tasks) <= 1 || i < 0 || i >= len(tasks) {
		return tasks
	}
	return append(tasks[:i], tasks[i+1:]...)
}

// Progress returns the filled-sections percentage the editor shows: how
// many of the six main sections contain something, rounded to a percent.
func (f *Form) Progress() int {
	completed := 0
	if anyTaskFilled(f.TasksCompleted) {
		completed++
	}
	if anyTaskFilled(f.WorkInProgress) {
		completed++
	}
	for _, c := range f.Challenges {
		if strings.TrimSpace(c.Description) != "" {
			completed++
			break
		}
	}
	if strings.TrimSpace(f.Improvements) != "" {
		completed++
	}
	if strings.TrimSpace(f.NextWeekPlan) != "" {
		completed++
	}
	if strings.TrimSpace(f.Summary) != "" {
		completed++
	}
	return completed * 100 / sectionCount
}

func anyTaskFilled(tasks []entity.Task) bool {
	for _, t := range tasks {
		if strings.TrimSpace(t.Title) != "" {
			return true
		}
	}
	return false
}

// Submittable reports whether the form passes the submit gate: at least
// one non-blank completed task and a summary.
func (f *Form) Submittable() bool {
	return len(FilterTasks(f.TasksCompleted)) > 0 && strings.TrimSpace(f.Summary) != ""
}

// Payload filters blank rows and validates the submit gate. Draft saves
// always pass; submits need at least one completed task and a summary.
// This is a UX gate, not a security boundary; the server re-validates.
func (f *Form) Payload(status string) (*Payload, error) {
	tasks := FilterTasks(f.TasksCompleted)
	wip := FilterTasks(f.WorkInProgress)
	challenges := FilterChallenges(f.Challenges)

	if status == entity.StatusSubmitted {
		if len(tasks) == 0 {
			return nil, ErrNoCompletedTasks
		}
		if strings.TrimSpace(f.Summary) == "" {
			return nil, ErrNoSummary
		}
	}

	return &Payload{
		WeekStartDate:  f.WeekStartDate,
		WeekEndDate:    f.WeekEndDate,
		TasksCompleted: tasks,
		WorkInProgress: wip,
		Challenges:     challenges,
		Improvements:   f.Improvements,
		NextWeekPlan:   f.NextWeekPlan,
		Summary:        f.Summary,
		Status:         status,
	}, nil
}

// FilterTasks drops rows whose title is blank.
func FilterTasks(tasks []entity.Task) []entity.Task {
	out := make([]entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		if t.Priority == "" {
			t.Priority = entity.PriorityMedium
		}
		out = append(out, t)
	}
	return out
}

// FilterChallenges drops rows whose description is blank.
func FilterChallenges(challenges []entity.Challenge) []entity.Challenge {
	out := make([]entity.Challenge, 0, len(challenges))
	for _, c := range challenges {
		if strings.TrimSpace(c.Description) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}
