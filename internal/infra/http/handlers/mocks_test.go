package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, p entity.Page) ([]*entity.User, int, error) {
	args := m.Called(ctx, p)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Int(1), args.Error(2)
}

type MockLeadRepo struct{ mock.Mock }

func (m *MockLeadRepo) Create(ctx context.Context, l *entity.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*entity.Lead)
	return l, args.Error(1)
}

func (m *MockLeadRepo) Update(ctx context.Context, l *entity.Lead) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockLeadRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepo) List(ctx context.Context, f entity.LeadFilter, p entity.Page) ([]*entity.Lead, int, error) {
	args := m.Called(ctx, f, p)
	leads, _ := args.Get(0).([]*entity.Lead)
	return leads, args.Int(1), args.Error(2)
}

func (m *MockLeadRepo) UpdateScore(ctx context.Context, id string, score int, updatedBy *string) error {
	return m.Called(ctx, id, score, updatedBy).Error(0)
}

func (m *MockLeadRepo) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockInteractionRepo struct{ mock.Mock }

func (m *MockInteractionRepo) Create(ctx context.Context, i *entity.Interaction) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInteractionRepo) ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	args := m.Called(ctx, leadID)
	list, _ := args.Get(0).([]*entity.Interaction)
	return list, args.Error(1)
}

type MockTaskRepo struct{ mock.Mock }

func (m *MockTaskRepo) Create(ctx context.Context, t *entity.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*entity.Task)
	return t, args.Error(1)
}

func (m *MockTaskRepo) Update(ctx context.Context, t *entity.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepo) List(ctx context.Context, f entity.TaskFilter, p entity.Page) ([]*entity.Task, int, error) {
	args := m.Called(ctx, f, p)
	tasks, _ := args.Get(0).([]*entity.Task)
	return tasks, args.Int(1), args.Error(2)
}

type MockFileRepo struct{ mock.Mock }

func (m *MockFileRepo) Create(ctx context.Context, f *entity.File) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFileRepo) FindByID(ctx context.Context, id string) (*entity.File, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*entity.File)
	return f, args.Error(1)
}

func (m *MockFileRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFileRepo) List(ctx context.Context, f entity.FileFilter, p entity.Page) ([]*entity.File, int, error) {
	args := m.Called(ctx, f, p)
	files, _ := args.Get(0).([]*entity.File)
	return files, args.Int(1), args.Error(2)
}

type fakeUoW struct {
	leads        *MockLeadRepo
	interactions *MockInteractionRepo
	tasks        *MockTaskRepo
}

func (u *fakeUoW) Leads() entity.LeadRepositoryInterface               { return u.leads }
func (u *fakeUoW) Interactions() entity.InteractionRepositoryInterface { return u.interactions }
func (u *fakeUoW) Tasks() entity.TaskRepositoryInterface               { return u.tasks }
func (u *fakeUoW) Clients() entity.ClientRepositoryInterface           { return nil }

func (u *fakeUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, s entity.Stores) error) error {
	return fn(ctx, u)
}

type stubPinger struct{ err error }

func (s stubPinger) PingContext(context.Context) error { return s.err }

type stubQueue bool

func (s stubQueue) Healthy() bool { return bool(s) }
