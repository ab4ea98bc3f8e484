package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return TaskID{UUID: id}, nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// Priority is a closed enumeration.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority validates a priority string against the closed set.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Status is a closed enumeration. Any overwrite among the three states is
// allowed; there is no enforced linear progression.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// ParseStatus validates a status string against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Task is a unit of work inside a project. AssignedTo is a single identity
// or nil when unassigned.
type Task struct {
	ID          TaskID
	ProjectID   ProjectID
	Title       string
	Description string
	Priority    Priority
	Status      Status
	Deadline    *time.Time
	AssignedTo  *IdentityID
	CreatedBy   IdentityID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
