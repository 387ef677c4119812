package entity

import "time"

// Report status values. A report starts as a draft and can move to
// submitted exactly once; no operation moves it back.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task is one row of the "tasks completed" or "work in progress" sections.
type Task struct {
	Title     string   `json:"title"`
	TimeSpent *float64 `json:"timeSpent,omitempty"` // hours
	Priority  string   `json:"priority,omitempty"`  // Low, Medium, High
}

// Challenge is one row of the challenges section.
type Challenge struct {
	Description string `json:"description"`
	Solution    string `json:"solution,omitempty"`
}

// Report is the aggregate root for a weekly status report. Task and
// Challenge rows have no identity of their own; they live and die with
// the report that contains them.
type Report struct {
	ID             string
	UserID         string // owner; the only user allowed to touch this report
	WeekStartDate  time.Time
	WeekEndDate    time.Time
	TasksCompleted []Task
	WorkInProgress []Task
	Challenges     []Challenge
	Improvements   string
	NextWeekPlan   string
	Summary        string
	Status         string
	SubmittedAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsSubmitted reports whether the report has been finalized.
func (r *Report) IsSubmitted() bool {
	return r.Status == StatusSubmitted
}
