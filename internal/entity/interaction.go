package entity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type InteractionType string

const (
	InteractionCall     InteractionType = "CALL"
	InteractionMeeting  InteractionType = "MEETING"
	InteractionEmail    InteractionType = "EMAIL"
	InteractionNote     InteractionType = "NOTE"
	InteractionOther    InteractionType = "OTHER"
	InteractionDocument InteractionType = "DOCUMENT"
	InteractionProposal InteractionType = "PROPOSAL"
	InteractionDemo     InteractionType = "DEMO"
	InteractionQuote    InteractionType = "QUOTE"
)

var InteractionTypes = []InteractionType{
	InteractionCall, InteractionMeeting, InteractionEmail, InteractionNote, InteractionOther,
	InteractionDocument, InteractionProposal, InteractionDemo, InteractionQuote,
}

func (t InteractionType) Valid() bool {
	for _, v := range InteractionTypes {
		if v == t {
			return true
		}
	}
	return false
}

const OutcomeAttended = "ATTENDED"

// InteractionOutcomes are the outcomes offered by the forms. Any other text is
// stored as given; only ATTENDED affects the score.
var InteractionOutcomes = []string{OutcomeAttended, "NO_SHOW", "RESCHEDULED", "POSITIVE", "NEGATIVE", "NEUTRAL"}

// Interaction is immutable once stored.
type Interaction struct {
	ID              string          `json:"id"`
	LeadID          string          `json:"leadId"`
	UserID          string          `json:"userId"`
	Type            InteractionType `json:"type"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	InteractionDate time.Time       `json:"interactionDate"`
	NextFollowUp    *time.Time      `json:"nextFollowUp,omitempty"`
	DurationMinutes *int            `json:"durationMinutes,omitempty"`
	Outcome         *string         `json:"outcome,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func NewInteraction(leadID, userID string, t InteractionType, title string, at time.Time) *Interaction {
	return &Interaction{
		ID:              uuid.New().String(),
		LeadID:          leadID,
		UserID:          userID,
		Type:            t,
		Title:           title,
		InteractionDate: at,
		CreatedAt:       time.Now(),
	}
}

type InteractionRepositoryInterface interface {
	Create(ctx context.Context, i *Interaction) error
	// ListByLead returns interactions newest first by created_at.
	ListByLead(ctx context.Context, leadID string) ([]*Interaction, error)
}
