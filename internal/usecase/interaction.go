package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/scoring"
)

type InteractionUseCase struct {
	UoW          entity.UnitOfWork
	Leads        entity.LeadRepositoryInterface
	Interactions entity.InteractionRepositoryInterface
	Queue        QueueProducerInterface
	Rules        scoring.Rules
	Now          func() time.Time
	Log          logger.Logger
}

func NewInteractionUseCase(
	uow entity.UnitOfWork,
	leads entity.LeadRepositoryInterface,
	interactions entity.InteractionRepositoryInterface,
	producer QueueProducerInterface,
	log logger.Logger,
) *InteractionUseCase {
	return &InteractionUseCase{
		UoW:          uow,
		Leads:        leads,
		Interactions: interactions,
		Queue:        producer,
		Rules:        scoring.DefaultRules(),
		Now:          time.Now,
		Log:          log,
	}
}

// Create stores the interaction, rescores the lead and spawns the follow-up
// task in one transaction. The follow-up event is published after commit.
func (uc *InteractionUseCase) Create(ctx context.Context, leadID string, input CreateInteractionInput, actor entity.Identity) (*CreateInteractionOutput, error) {
	if err := ValidateCreateInteractionInput(input); err != nil {
		return nil, err
	}
	if actor.UserID == "" {
		return nil, unauthorized(CodeUnauthorized, "authentication required")
	}

	i := entity.NewInteraction(leadID, actor.UserID, entity.InteractionType(input.Type), strings.TrimSpace(input.Title), *input.InteractionDate)
	i.Description = input.Description
	i.NextFollowUp = input.NextFollowUp
	i.DurationMinutes = input.DurationMinutes
	if input.Outcome != nil {
		if outcome := normalizeOutcome(*input.Outcome); outcome != "" {
			i.Outcome = &outcome
		}
	}
	if len(input.Metadata) > 0 {
		i.Metadata = input.Metadata
	}

	out := &CreateInteractionOutput{Interaction: i}
	var lead *entity.Lead

	err := uc.UoW.WithinTx(ctx, func(ctx context.Context, s entity.Stores) error {
		var err error
		lead, err = s.Leads().FindByID(ctx, leadID)
		if err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
		}

		if err := s.Interactions().Create(ctx, i); err != nil {
			return repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to create interaction")
		}

		score, err := recalculateScore(ctx, s.Leads(), s.Interactions(), uc.Rules, uc.Now(), leadID)
		if err != nil {
			return err
		}
		out.NewScore = score.Score

		if i.NextFollowUp == nil {
			return nil
		}
		task, err := entity.NewFollowUpTask(i)
		if err != nil {
			return invalid(ValidationError{"nextFollowUp", err.Error()})
		}
		if err := s.Tasks().Create(ctx, task); err != nil {
			return repoError(err, entity.ErrTaskNotFound, CodeTaskNotFound, "failed to create follow-up task")
		}
		out.Task = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	if out.Task != nil {
		uc.publishFollowUp(ctx, out.Task, lead, actor)
	}
	return out, nil
}

func (uc *InteractionUseCase) publishFollowUp(ctx context.Context, task *entity.Task, lead *entity.Lead, actor entity.Identity) {
	if uc.Queue == nil {
		return
	}
	payload := queue.FollowUpTaskPayload{
		TaskID:        task.ID,
		Title:         task.Title,
		DueDate:       task.DueDate,
		LeadID:        lead.ID,
		LeadName:      lead.FullName(),
		InteractionID: *task.InteractionID,
		AssigneeID:    task.AssignedTo,
		AssigneeName:  actor.Name,
		AssigneeEmail: actor.Email,
	}
	if err := uc.Queue.PublishFollowUpTask(ctx, payload); err != nil {
		uc.Log.Warn("follow-up event not published", map[string]interface{}{
			"task_id": task.ID,
			"error":   err,
		})
	}
}

func (uc *InteractionUseCase) List(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	if _, err := uc.Leads.FindByID(ctx, leadID); err != nil {
		return nil, repoError(err, entity.ErrLeadNotFound, CodeLeadNotFound, "failed to load lead")
	}
	list, err := uc.Interactions.ListByLead(ctx, leadID)
	if err != nil {
		return nil, dbError("failed to list interactions", err)
	}
	if list == nil {
		list = []*entity.Interaction{}
	}
	return list, nil
}

// normalizeOutcome upper-cases the known outcomes and keeps free text as typed.
func normalizeOutcome(raw string) string {
	outcome := strings.TrimSpace(raw)
	for _, known := range entity.InteractionOutcomes {
		if strings.EqualFold(outcome, known) {
			return known
		}
	}
	return outcome
}
