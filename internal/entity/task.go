package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
	TaskOverdue    TaskStatus = "OVERDUE"
)

var TaskStatuses = []TaskStatus{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled, TaskOverdue}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

var TaskPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Priority      string     `json:"priority"`
	Status        TaskStatus `json:"status"`
	LeadID        *string    `json:"leadId,omitempty"`
	InteractionID *string    `json:"interactionId,omitempty"`
	AssignedTo    string     `json:"assignedTo"`
	CreatedBy     string     `json:"createdBy"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewTask(title, assignedTo, createdBy string) (*Task, error) {
	now := time.Now()
	t := &Task{
		ID:         uuid.New().String(),
		Title:      strings.TrimSpace(title),
		Priority:   PriorityMedium,
		Status:     TaskPending,
		AssignedTo: assignedTo,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// NewFollowUpTask builds the task spawned by an interaction with a follow-up date.
func NewFollowUpTask(i *Interaction) (*Task, error) {
	if i.NextFollowUp == nil {
		return nil, errors.New("interaction has no follow-up date")
	}
	t, err := NewTask("Follow up: "+i.Title, i.UserID, i.UserID)
	if err != nil {
		return nil, err
	}
	due := *i.NextFollowUp
	leadID := i.LeadID
	interactionID := i.ID
	t.DueDate = &due
	t.LeadID = &leadID
	t.InteractionID = &interactionID
	t.Description = i.Description
	return t, nil
}

func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.AssignedTo == "" {
		return errors.New("assignee is required")
	}
	if !t.Status.Valid() {
		return errors.New("status is invalid")
	}
	valid := false
	for _, p := range TaskPriorities {
		if p == t.Priority {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("priority is invalid")
	}
	return nil
}

type TaskFilter struct {
	Statuses   []TaskStatus
	AssignedTo string
	LeadID     string
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TaskFilter, p Page) ([]*Task, int, error)
}
