package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/scoring"
)

type LeadUseCase struct {
	UoW          entity.UnitOfWork
	Leads        entity.LeadRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
	Rules        scoring.Rules
	Now          func() time.Time
}

func NewLeadUseCase(uow entity.UnitOfWork, leads entity.LeadRepositoryInterface, interactions entity.InteractionRepositoryInterface) *LeadUseCase {
	return &LeadUseCase{
		UoW:          uow,
		Leads:        leads,
		Interactions: interactions,
		Rules:        scoring.DefaultRules(),
		Now:          time.Now,
	}
}

func (uc *LeadUseCase) Create(ctx context.Context, input CreateLeadInput, actor entity.Identity) (*entity.Lead, error) {
	if err := ValidateCreateLeadInput(input); err != nil {
		return nil, err
	}

	owner := input.OwnerID
	if owner == "" {
		owner = actor.UserID
	}
	lead, err := entity.NewLead(input.FirstName, input.LastName, input.Email, owner)
	if err != nil {
		return nil, invalid(ValidationError{"lead", err.Error()})
	}
	lead.Phone = strings.TrimSpace(input.Phone)
	lead.Company = strings.TrimSpace(input.Company)
	lead.JobTitle = strings.TrimSpace(input.JobTitle)
	lead.Source = input.Source
	lead.CompanySize = input.CompanySize
	lead.Industry = strings.TrimSpace(input.Industry)
	lead.Budget = input.Budget
	lead.Notes = input.Notes
	if input.Status != "" {
		lead.Status = entity.LeadStatus(input.Status)
	}
	updatedBy := actor.UserID
	lead.UpdatedBy = &updatedBy

	// A fresh lead has no interactions, so only the demographic part counts.
	lead.Score = uc.Rules.Calculate(scoring.DemographicsOf(lead), nil, uc.Now()).Score

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to create lead")
	}
	return lead, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := uc.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
	}
	return lead, nil
}

// Update applies the patch and rescores the lead, since demographics may have changed.
func (uc *LeadUseCase) Update(ctx context.Context, id string, input UpdateLeadInput, actor entity.Identity) (*entity.Lead, error) {
	if err := ValidateUpdateLeadInput(input); err != nil {
		return nil, err
	}

	var lead *entity.Lead
	err := uc.UoW.WithinTx(ctx, func(ctx context.Context, s entity.Stores) error {
		var err error
		lead, err = s.Leads().FindByID(ctx, id)
		if err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
		}

		applyLeadPatch(lead, input)
		updatedBy := actor.UserID
		lead.UpdatedBy = &updatedBy
		lead.UpdatedAt = time.Now()

		if err := s.Leads().Update(ctx, lead); err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to update lead")
		}

		score, err := recalculateScore(ctx, s.Leads(), s.Interactions(), uc.Rules, uc.Now(), id)
		if err != nil {
			return err
		}
		lead.Score = score.Score
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func applyLeadPatch(l *entity.Lead, in UpdateLeadInput) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&l.FirstName, in.FirstName)
	set(&l.LastName, in.LastName)
	set(&l.Phone, in.Phone)
	set(&l.Company, in.Company)
	set(&l.JobTitle, in.JobTitle)
	set(&l.Source, in.Source)
	set(&l.CompanySize, in.CompanySize)
	set(&l.Industry, in.Industry)
	set(&l.OwnerID, in.OwnerID)
	if in.Email != nil {
		l.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Status != nil {
		l.Status = entity.LeadStatus(*in.Status)
	}
	if in.Notes != nil {
		l.Notes = *in.Notes
	}
	if in.Budget != nil {
		b := *in.Budget
		l.Budget = &b
	}
}

func (uc *LeadUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Leads.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to delete lead")
	}
	return nil
}

func (uc *LeadUseCase) List(ctx context.Context, f entity.LeadFilter, p entity.Page) (entity.PageResult[*entity.Lead], error) {
	for _, s := range f.Statuses {
		if !s.Valid() {
			return entity.PageResult[*entity.Lead]{}, invalid(ValidationError{"status", "unknown status " + string(s)})
		}
	}
	leads, total, err := uc.Leads.List(ctx, f, p)
	if err != nil {
		return entity.PageResult[*entity.Lead]{}, dbError("failed to list leads", err)
	}
	return entity.NewPageResult(leads, total, p), nil
}

// Convert turns the lead into a client and marks it WON.
func (uc *LeadUseCase) Convert(ctx context.Context, id string, actor entity.Identity) (*ConvertLeadOutput, error) {
	out := &ConvertLeadOutput{}
	err := uc.UoW.WithinTx(ctx, func(ctx context.Context, s entity.Stores) error {
		lead, err := s.Leads().FindByID(ctx, id)
		if err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
		}
		if lead.Status == entity.LeadStatusWon {
			return conflict(CodeLeadAlreadyWon, "lead was already converted")
		}

		owner := lead.OwnerID
		if owner == "" {
			owner = actor.UserID
		}
		client, err := entity.NewClientFromLead(lead, owner)
		if err != nil {
			return invalid(ValidationError{"lead", err.Error()})
		}
		if err := s.Clients().Create(ctx, client); err != nil {
			return repoError(err, entity.ErrClientNotFound, CodeClientNotFound, "failed to create client")
		}
		if err := s.Leads().UpdateStatus(ctx, id, entity.LeadStatusWon); err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to update lead")
		}

		lead.Status = entity.LeadStatusWon
		out.Lead = lead
		out.Client = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
