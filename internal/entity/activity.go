package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ActivityTypes = []string{"CALL", "MEETING", "EMAIL", "NOTE", "TASK"}

type Activity struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Subject     string     `json:"subject"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	LeadID      *string    `json:"leadId,omitempty"`
	ClientID    *string    `json:"clientId,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewActivity(activityType, subject, userID string) (*Activity, error) {
	now := time.Now()
	a := &Activity{
		ID:        uuid.New().String(),
		Type:      activityType,
		Subject:   subject,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Activity) Validate() error {
	valid := false
	for _, t := range ActivityTypes {
		if t == a.Type {
			valid = true
			break
		}
	}
	if !valid {
		return errors.New("type is invalid")
	}
	if a.Subject == "" {
		return errors.New("subject is required")
	}
	if a.UserID == "" {
		return errors.New("user is required")
	}
	return nil
}

type ActivityFilter struct {
	LeadID    string
	ClientID  string
	Completed *bool
}

type ActivityRepositoryInterface interface {
	Create(ctx context.Context, a *Activity) error
	FindByID(ctx context.Context, id string) (*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ActivityFilter, p Page) ([]*Activity, int, error)
}
