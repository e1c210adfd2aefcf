package usecase

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

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
	l, _ := args.Get(0).([]*entity.Lead)
	return l, args.Int(1), args.Error(2)
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
	l, _ := args.Get(0).([]*entity.Interaction)
	return l, args.Error(1)
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
	t, _ := args.Get(0).([]*entity.Task)
	return t, args.Int(1), args.Error(2)
}

type MockClientRepo struct{ mock.Mock }

func (m *MockClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepo) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *MockClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientRepo) List(ctx context.Context, f entity.ClientFilter, p entity.Page) ([]*entity.Client, int, error) {
	args := m.Called(ctx, f, p)
	c, _ := args.Get(0).([]*entity.Client)
	return c, args.Int(1), args.Error(2)
}

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
	u, _ := args.Get(0).([]*entity.User)
	return u, args.Int(1), args.Error(2)
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

type MockDashboardRepo struct{ mock.Mock }

func (m *MockDashboardRepo) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entity.DashboardSummary)
	return s, args.Error(1)
}

// fakeUoW runs the callback directly against the mocks and records the outcome.
type fakeUoW struct {
	leads        *MockLeadRepo
	interactions *MockInteractionRepo
	tasks        *MockTaskRepo
	clients      *MockClientRepo
	committed    bool
	rolledBack   bool
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		leads:        new(MockLeadRepo),
		interactions: new(MockInteractionRepo),
		tasks:        new(MockTaskRepo),
		clients:      new(MockClientRepo),
	}
}

func (u *fakeUoW) Leads() entity.LeadRepositoryInterface               { return u.leads }
func (u *fakeUoW) Interactions() entity.InteractionRepositoryInterface { return u.interactions }
func (u *fakeUoW) Tasks() entity.TaskRepositoryInterface               { return u.tasks }
func (u *fakeUoW) Clients() entity.ClientRepositoryInterface           { return u.clients }

func (u *fakeUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, s entity.Stores) error) error {
	if err := fn(ctx, u); err != nil {
		u.rolledBack = true
		return err
	}
	u.committed = true
	return nil
}

type MockHasher struct{ mock.Mock }

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}

type MockTokens struct{ mock.Mock }

func (m *MockTokens) Issue(u *entity.User) (string, entity.Identity, error) {
	args := m.Called(u)
	return args.String(0), args.Get(1).(entity.Identity), args.Error(2)
}

type MockRevoker struct{ mock.Mock }

func (m *MockRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}

func (m *MockRevoker) RevokeUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockQueue struct{ mock.Mock }

func (m *MockQueue) PublishFollowUpTask(ctx context.Context, p queue.FollowUpTaskPayload) error {
	return m.Called(ctx, p).Error(0)
}

type MockCache struct{ mock.Mock }

func (m *MockCache) GetSummary(ctx context.Context) (*entity.DashboardSummary, bool, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*entity.DashboardSummary)
	return s, args.Bool(1), args.Error(2)
}

func (m *MockCache) SetSummary(ctx context.Context, s *entity.DashboardSummary, ttl time.Duration) error {
	return m.Called(ctx, s, ttl).Error(0)
}

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Save(ctx context.Context, name string, r io.Reader) (string, int64, error) {
	args := m.Called(ctx, name, r)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) Open(path string) (io.ReadCloser, error) {
	args := m.Called(path)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) Remove(path string) error {
	return m.Called(path).Error(0)
}

func ptr[T any](v T) *T { return &v }

var testActor = entity.Identity{UserID: "user-1", Email: "rep@example.com", Name: "Rep", Role: entity.RoleSalesRep}

func testLead() *entity.Lead {
	budget := 150000.0
	return &entity.Lead{
		ID:          "lead-1",
		FirstName:   "Ana",
		LastName:    "Souza",
		Email:       "ana@example.com",
		Company:     "Acme",
		Status:      entity.LeadStatusQualified,
		CompanySize: entity.CompanySizeEnterprise,
		Industry:    "Technology",
		Budget:      &budget,
		OwnerID:     "owner-1",
		CreatedAt:   time.Now(),
	}
}
