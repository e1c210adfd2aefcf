package usecase

import (
	"encoding/json"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/scoring"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *entity.User `json:"user"`
}

type CreateUserInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     entity.Role `json:"role"`
}

type UpdateUserInput struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *entity.Role `json:"role"`
}

type CreateLeadInput struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company"`
	JobTitle    string   `json:"jobTitle"`
	Source      string   `json:"source"`
	Status      string   `json:"status"`
	CompanySize string   `json:"companySize"`
	Industry    string   `json:"industry"`
	Budget      *float64 `json:"budget"`
	Notes       string   `json:"notes"`
	OwnerID     string   `json:"ownerId"`
}

// UpdateLeadInput is a partial update; nil fields are left untouched.
type UpdateLeadInput struct {
	FirstName   *string  `json:"firstName"`
	LastName    *string  `json:"lastName"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Company     *string  `json:"company"`
	JobTitle    *string  `json:"jobTitle"`
	Source      *string  `json:"source"`
	Status      *string  `json:"status"`
	CompanySize *string  `json:"companySize"`
	Industry    *string  `json:"industry"`
	Budget      *float64 `json:"budget"`
	Notes       *string  `json:"notes"`
	OwnerID     *string  `json:"ownerId"`
}

type ConvertLeadOutput struct {
	Lead   *entity.Lead   `json:"lead"`
	Client *entity.Client `json:"client"`
}

type ScoreOutput struct {
	LeadID    string             `json:"leadId"`
	Score     int                `json:"score"`
	Breakdown *scoring.Breakdown `json:"breakdown,omitempty"`
}

type CreateInteractionInput struct {
	Type            string          `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	InteractionDate *time.Time      `json:"interactionDate"`
	NextFollowUp    *time.Time      `json:"nextFollowUp"`
	DurationMinutes *int            `json:"durationMinutes"`
	Outcome         *string         `json:"outcome"`
	Metadata        json.RawMessage `json:"metadata"`
}

type CreateInteractionOutput struct {
	Interaction *entity.Interaction `json:"interaction"`
	NewScore    int                 `json:"newScore"`
	Task        *entity.Task        `json:"task,omitempty"`
}

type ClientInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Industry *string `json:"industry"`
	Address  *string `json:"address"`
	Website  *string `json:"website"`
	Status   *string `json:"status"`
	OwnerID  *string `json:"ownerId"`
}

type ContactInput struct {
	ClientID  *string `json:"clientId"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Position  *string `json:"position"`
	IsPrimary *bool   `json:"isPrimary"`
}

type ActivityInput struct {
	Type        *string    `json:"type"`
	Subject     *string    `json:"subject"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	LeadID      *string    `json:"leadId"`
	ClientID    *string    `json:"clientId"`
}

type TaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	LeadID      *string    `json:"leadId"`
	AssignedTo  *string    `json:"assignedTo"`
}

type UploadFileInput struct {
	Name     string
	MimeType string
	LeadID   string
	ClientID string
}

type Options struct {
	CompanySizes     []string                 `json:"companySizes"`
	Industries       []string                 `json:"industries"`
	LeadStatuses     []entity.LeadStatus      `json:"leadStatuses"`
	LeadSources      []string                 `json:"leadSources"`
	InteractionTypes []entity.InteractionType `json:"interactionTypes"`
	Outcomes         []string                 `json:"interactionOutcomes"`
	TaskPriorities   []string                 `json:"taskPriorities"`
	TaskStatuses     []entity.TaskStatus      `json:"taskStatuses"`
	ActivityTypes    []string                 `json:"activityTypes"`
	Roles            []entity.Role            `json:"roles"`
}
