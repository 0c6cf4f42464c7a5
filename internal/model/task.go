package model

import (
	"time"
)

// Task represents a single planned item on the radar
type Task struct {
	ID           string    `json:"id"`
	CreatedDate  time.Time `json:"created_date"` // calendar date the task starts from
	Deadline     time.Time `json:"deadline"`
	Project      string    `json:"project,omitempty"`
	ProjectTag   string    `json:"project_tag,omitempty"`
	ProjectColor string    `json:"project_color,omitempty"`
	Description  string    `json:"description"`

	// Derived from (today, deadline); never set independently.
	Region        Region `json:"region"`
	Bucket        Bucket `json:"bucket"`
	RemainingDays int    `json:"remaining_days"`

	FinishedAt *time.Time `json:"finished_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsFinished returns true if the task has been marked done.
// Finished tasks keep the placement they had at completion time.
func (t *Task) IsFinished() bool {
	return t.FinishedAt != nil
}

// EffectiveColor returns the explicit project color when set, otherwise
// a palette color derived from the project name.
func (t *Task) EffectiveColor() string {
	if t.ProjectColor != "" {
		return t.ProjectColor
	}
	return ColorForProject(t.Project)
}

// IsDueOn returns true if the task's deadline falls on the given calendar day
func (t *Task) IsDueOn(day time.Time) bool {
	return t.Deadline.Year() == day.Year() &&
		t.Deadline.YearDay() == day.YearDay()
}
