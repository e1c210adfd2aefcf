package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type TaskUseCase struct {
	Tasks entity.TaskRepositoryInterface
}

func NewTaskUseCase(tasks entity.TaskRepositoryInterface) *TaskUseCase {
	return &TaskUseCase{Tasks: tasks}
}

func applyTaskPatch(t *entity.Task, in TaskInput) {
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.DueDate != nil {
		d := *in.DueDate
		t.DueDate = &d
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.Status != nil {
		t.Status = entity.TaskStatus(*in.Status)
	}
	if in.LeadID != nil {
		t.LeadID = optionalID(*in.LeadID)
	}
	if in.AssignedTo != nil {
		t.AssignedTo = strings.TrimSpace(*in.AssignedTo)
	}
}

func (uc *TaskUseCase) Create(ctx context.Context, input TaskInput, actor entity.Identity) (*entity.Task, error) {
	if err := ValidateTaskInput(input, true); err != nil {
		return nil, err
	}
	assignee := actor.UserID
	if a := deref(input.AssignedTo); a != "" {
		assignee = a
	}
	t, err := entity.NewTask(*input.Title, assignee, actor.UserID)
	if err != nil {
		return nil, invalid(ValidationError{"task", err.Error()})
	}
	input.AssignedTo = nil
	applyTaskPatch(t, input)

	if err := uc.Tasks.Create(ctx, t); err != nil {
		return nil, repoError(err, entity.ErrTaskNotFound, CodeTaskNotFound, "failed to create task")
	}
	return t, nil
}

func (uc *TaskUseCase) Get(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entity.ErrTaskNotFound, CodeTaskNotFound, "failed to load task")
	}
	return t, nil
}

func (uc *TaskUseCase) Update(ctx context.Context, id string, input TaskInput) (*entity.Task, error) {
	if err := ValidateTaskInput(input, false); err != nil {
		return nil, err
	}
	t, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyTaskPatch(t, input)
	t.UpdatedAt = time.Now()

	if err := uc.Tasks.Update(ctx, t); err != nil {
		return nil, repoError(err, entity.ErrTaskNotFound, CodeTaskNotFound, "failed to update task")
	}
	return t, nil
}

func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Tasks.Delete(ctx, id); err != nil {
		return repoError(err, entity.ErrTaskNotFound, CodeTaskNotFound, "failed to delete task")
	}
	return nil
}

func (uc *TaskUseCase) List(ctx context.Context, f entity.TaskFilter, p entity.Page) (entity.PageResult[*entity.Task], error) {
	for _, s := range f.Statuses {
		if !s.Valid() {
			return entity.PageResult[*entity.Task]{}, invalid(ValidationError{"status", "unknown status " + string(s)})
		}
	}
	items, total, err := uc.Tasks.List(ctx, f, p)
	if err != nil {
		return entity.PageResult[*entity.Task]{}, dbError("failed to list tasks", err)
	}
	return entity.NewPageResult(items, total, p), nil
}
