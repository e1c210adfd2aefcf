package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/scoring"
)

type LeadScoringUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
	Rules        scoring.Rules
	Now          func() time.Time
}

func NewLeadScoringUseCase(leads entity.LeadRepositoryInterface, interactions entity.InteractionRepositoryInterface) *LeadScoringUseCase {
	return &LeadScoringUseCase{
		Leads:        leads,
		Interactions: interactions,
		Rules:        scoring.DefaultRules(),
		Now:          time.Now,
	}
}

// Recalculate recomputes the lead's score from its stored state and persists it.
func (uc *LeadScoringUseCase) Recalculate(ctx context.Context, leadID string) (*ScoreOutput, error) {
	return recalculateScore(ctx, uc.Leads, uc.Interactions, uc.Rules, uc.Now(), leadID)
}

// Override stores an explicit score, bypassing the calculator.
func (uc *LeadScoringUseCase) Override(ctx context.Context, leadID string, score float64, actor entity.Identity) (*ScoreOutput, error) {
	if score < scoring.MinScore || score > scoring.MaxScore || score != math.Trunc(score) {
		return nil, &DomainError{
			Kind:    KindValidation,
			Code:    CodeInvalidScore,
			Message: "score must be an integer between 0 and 100",
		}
	}
	if actor.UserID == "" {
		return nil, unauthorized(CodeUnauthorized, "authentication required")
	}

	value := int(score)
	actorID := actor.UserID
	if err := uc.Leads.UpdateScore(ctx, leadID, value, &actorID); err != nil {
		return nil, repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to update score")
	}
	return &ScoreOutput{LeadID: leadID, Score: value}, nil
}

func recalculateScore(
	ctx context.Context,
	leads entity.LeadRepositoryInterface,
	interactions entity.InteractionRepositoryInterface,
	rules scoring.Rules,
	now time.Time,
	leadID string,
) (*ScoreOutput, error) {
	lead, err := leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
	}

	list, err := interactions.ListByLead(ctx, leadID)
	if err != nil {
		return nil, dbError("failed to load interactions", err)
	}

	b := rules.Calculate(scoring.DemographicsOf(lead), scoring.SignalsOf(list), now)

	if err := leads.UpdateScore(ctx, leadID, b.Score, nil); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, notFound(CodeLeadNotFound, err.Error())
		}
		return nil, dbError("failed to persist score", err)
	}
	return &ScoreOutput{LeadID: leadID, Score: b.Score, Breakdown: &b}, nil
}
