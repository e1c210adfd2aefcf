package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusQualified   LeadStatus = "QUALIFIED"
	LeadStatusProposal    LeadStatus = "PROPOSAL"
	LeadStatusNegotiation LeadStatus = "NEGOTIATION"
	LeadStatusWon         LeadStatus = "WON"
	LeadStatusLost        LeadStatus = "LOST"
)

var LeadStatuses = []LeadStatus{
	LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
	LeadStatusProposal, LeadStatusNegotiation, LeadStatusWon, LeadStatusLost,
}

func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	CompanySizeEnterprise    = "Enterprise"
	CompanySizeMidMarket     = "Mid-Market"
	CompanySizeSmallBusiness = "Small Business"
	CompanySizeStartup       = "Startup"
)

var CompanySizes = []string{CompanySizeEnterprise, CompanySizeMidMarket, CompanySizeSmallBusiness, CompanySizeStartup}

var Industries = []string{"Technology", "Healthcare", "Finance", "Manufacturing", "Retail", "Other"}

var LeadSources = []string{"WEBSITE", "REFERRAL", "SOCIAL_MEDIA", "EMAIL_CAMPAIGN", "EVENT", "COLD_CALL", "OTHER"}

type Lead struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	JobTitle    string     `json:"jobTitle,omitempty"`
	Source      string     `json:"source,omitempty"`
	Status      LeadStatus `json:"status"`
	CompanySize string     `json:"companySize,omitempty"`
	Industry    string     `json:"industry,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Score       int        `json:"score"`
	OwnerID     string     `json:"ownerId"`
	UpdatedBy   *string    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewLead(firstName, lastName, email, ownerID string) (*Lead, error) {
	now := time.Now()
	lead := &Lead{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Status:    LeadStatusNew,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := lead.Validate(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *Lead) Validate() error {
	if l.FirstName == "" {
		return errors.New("first name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if l.OwnerID == "" {
		return errors.New("owner is required")
	}
	if !l.Status.Valid() {
		return errors.New("status is invalid")
	}
	return nil
}

func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

type LeadFilter struct {
	Statuses []LeadStatus
	Search   string
	OwnerID  string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f LeadFilter, p Page) ([]*Lead, int, error)

	// UpdateScore overwrites score and updated_at; updatedBy is stamped when non-nil.
	UpdateScore(ctx context.Context, id string, score int, updatedBy *string) error
	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
}
