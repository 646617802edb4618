package models

import (
	"errors"
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Toggled returns the opposite status. Anything that is not pending
// toggles back to pending.
func (s Status) Toggled() Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// DueDateLayout is the wire format of Task.DueDate.
const DueDateLayout = "2006-01-02"

// ErrInvalidTask is returned by Task.Validate.
var ErrInvalidTask = errors.New("invalid task")

// Task is a single to-do item owned by a user.
type Task struct {
	ID          ID       `json:"id,omitempty"`
	UserID      ID       `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// Completed reports whether the task is marked done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Validate checks the fields the task form marks as required.
func (t Task) Validate() error {
	switch {
	case strings.TrimSpace(t.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidTask)
	case strings.TrimSpace(t.DueDate) == "":
		return fmt.Errorf("%w: due date is required", ErrInvalidTask)
	case !t.Priority.Valid():
		return fmt.Errorf("%w: priority must be low, medium or high", ErrInvalidTask)
	}
	return nil
}

// CountPending returns how many tasks are still pending.
func CountPending(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == StatusPending {
			n++
		}
	}
	return n
}
