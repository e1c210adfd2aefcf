package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ActivityUseCase struct {
	Activities entity.ActivityRepositoryInterface
}

func NewActivityUseCase(activities entity.ActivityRepositoryInterface) *ActivityUseCase {
	return &ActivityUseCase{Activities: activities}
}

func applyActivityPatch(a *entity.Activity, in ActivityInput) {
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Subject != nil {
		a.Subject = strings.TrimSpace(*in.Subject)
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.DueDate != nil {
		d := *in.DueDate
		a.DueDate = &d
	}
	if in.Completed != nil {
		a.Completed = *in.Completed
	}
	if in.LeadID != nil {
		a.LeadID = optionalID(*in.LeadID)
	}
	if in.ClientID != nil {
		a.ClientID = optionalID(*in.ClientID)
	}
}

// optionalID maps an empty string to a cleared reference.
func optionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

func (uc *ActivityUseCase) Create(ctx context.Context, input ActivityInput, actor entity.Identity) (*entity.Activity, error) {
	if err := ValidateActivityInput(input, true); err != nil {
		return nil, err
	}
	a, err := entity.NewActivity(*input.Type, strings.TrimSpace(*input.Subject), actor.UserID)
	if err != nil {
		return nil, invalid(ValidationError{"activity", err.Error()})
	}
	applyActivityPatch(a, input)

	if err := uc.Activities.Create(ctx, a); err != nil {
		return nil, repoError(err, entity.ErrActivityNotFound, CodeActivityNotFound, "failed to create activity")
	}
	return a, nil
}

func (uc *ActivityUseCase) Get(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := uc.Activities.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrActivityNotFound, CodeActivityNotFound, "failed to load activity")
	}
	return a, nil
}

func (uc *ActivityUseCase) Update(ctx context.Context, id string, input ActivityInput) (*entity.Activity, error) {
	if err := ValidateActivityInput(input, false); err != nil {
		return nil, err
	}
	a, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyActivityPatch(a, input)
	a.UpdatedAt = time.Now()

	if err := uc.Activities.Update(ctx, a); err != nil {
		return nil, repoError(err, entity.ErrActivityNotFound, CodeActivityNotFound, "failed to update activity")
	}
	return a, nil
}

func (uc *ActivityUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Activities.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrActivityNotFound, CodeActivityNotFound, "failed to delete activity")
	}
	return nil
}

func (uc *ActivityUseCase) List(ctx context.Context, f entity.ActivityFilter, p entity.Page) (entity.PageResult[*entity.Activity], error) {
	items, total, err := uc.Activities.List(ctx, f, p)
	if err != nil {
		return entity.PageResult[*entity.Activity]{}, dbError("failed to list activities", err)
	}
	return entity.NewPageResult(items, total, p), nil
}
