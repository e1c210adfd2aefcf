package database

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var leadCols = []string{
	"id", "first_name", "last_name", "email", "phone", "company", "job_title", "source", "status",
	"company_size", "industry", "budget", "notes", "score", "owner_id", "updated_by", "created_at", "updated_at",
}

func leadRow(rows *sqlmock.Rows, id string, score int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "Ana", "Souza", "ana@example.com", "", "Acme", "CTO", "WEBSITE", "QUALIFIED",
		"Enterprise", "Technology", 150000.0, "", score, "owner-1", nil, now, now)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	u, err := entity.NewUser("Ana", "ana@example.com", "hash", "")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err = repo.Create(context.Background(), u)
	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow("u-1", "Ana", "ana@example.com", "hash", "MANAGER", now, now))

	u, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, u.Role)
	assert.Equal(t, "hash", u.PasswordHash)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE id = $1")).
		WithArgs("lead-1").
		WillReturnRows(leadRow(sqlmock.NewRows(leadCols), "lead-1", 42))

	l, err := repo.FindByID(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, 42, l.Score)
	require.NotNil(t, l.Budget)
	assert.Equal(t, 150000.0, *l.Budget)
	assert.Nil(t, l.UpdatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("FROM leads WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestRepositories_MalformedIDIsNotFound(t *testing.T) {
	badUUID := &pgconn.PgError{Code: invalidTextRepresentation, Message: `invalid input syntax for type uuid: "not-a-uuid"`}
	ctx := context.Background()

	t.Run("find lead", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("FROM leads WHERE id").WithArgs("not-a-uuid").WillReturnError(badUUID)

		_, err := NewLeadRepository(db).FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})

	t.Run("update score", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec("UPDATE leads SET score").WillReturnError(badUUID)

		err := NewLeadRepository(db).UpdateScore(ctx, "not-a-uuid", 10, nil)
		assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	})

	t.Run("delete client", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec("DELETE FROM clients").WillReturnError(badUUID)

		err := NewClientRepository(db).Delete(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, entity.ErrClientNotFound)
	})

	t.Run("find user", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("FROM users WHERE id").WillReturnError(badUUID)

		_, err := NewUserRepository(db).FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, entity.ErrUserNotFound)
	})

	t.Run("filter matches nothing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("SELECT COUNT").WillReturnError(badUUID)

		tasks, total, err := NewTaskRepository(db).List(ctx, entity.TaskFilter{AssignedTo: "bob"}, entity.NewPage(1, 20))
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.Zero(t, total)
	})

	t.Run("interactions of unknown lead", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("FROM lead_interactions").WillReturnError(badUUID)

		got, err := NewInteractionRepository(db).ListByLead(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reference in body", func(t *testing.T) {
		db, mock := newMock(t)
		task, err := entity.NewTask("Call back", "user-1", "user-1")
		require.NoError(t, err)
		mock.ExpectExec("INSERT INTO tasks").WillReturnError(badUUID)

		err = NewTaskRepository(db).Create(ctx, task)
		assert.ErrorIs(t, err, entity.ErrReferenceNotFound)
	})
}

func TestLeadRepository_List_WithFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	f := entity.LeadFilter{
		Statuses: []entity.LeadStatus{entity.LeadStatusNew, entity.LeadStatusQualified},
		Search:   "acme",
		OwnerID:  "owner-1",
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads WHERE status = ANY($1) AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR company ILIKE $2) AND owner_id = $3")).
		WithArgs(sqlmock.AnyArg(), "%acme%", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $4 OFFSET $5")).
		WithArgs(sqlmock.AnyArg(), "%acme%", "owner-1", 20, 20).
		WillReturnRows(leadRow(leadRow(sqlmock.NewRows(leadCols), "lead-1", 80), "lead-2", 10))

	leads, total, err := repo.List(context.Background(), f, entity.NewPage(2, 20))
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Len(t, leads, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_List_NoFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(leadCols))

	leads, total, err := repo.List(context.Background(), entity.LeadFilter{}, entity.NewPage(0, 0))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, leads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepository_UpdateScore(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLeadRepository(db)
	actor := "user-1"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET score = $2")).
		WithArgs("lead-1", 77, &actor).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET score = $2")).
		WithArgs("gone", 10, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateScore(context.Background(), "lead-1", 77, &actor))
	assert.ErrorIs(t, repo.UpdateScore(context.Background(), "gone", 10, nil), entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInteractionRepository_ListByLead(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInteractionRepository(db)
	now := time.Now()

	cols := []string{"id", "lead_id", "user_id", "type", "title", "description", "interaction_date",
		"next_follow_up", "duration_minutes", "outcome", "metadata", "created_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM lead_interactions WHERE lead_id = $1 ORDER BY created_at DESC")).
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("i-2", "lead-1", "u-1", "MEETING", "Demo", "", now, now.Add(24*time.Hour), 45, "ATTENDED", []byte(`{"room":"A"}`), now).
			AddRow("i-1", "lead-1", "u-1", "CALL", "Intro", "", now, nil, nil, nil, nil, now.Add(-time.Hour)))

	got, err := repo.ListByLead(context.Background(), "lead-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, entity.InteractionMeeting, got[0].Type)
	require.NotNil(t, got[0].Outcome)
	assert.Equal(t, "ATTENDED", *got[0].Outcome)
	assert.Equal(t, 45, *got[0].DurationMinutes)
	assert.JSONEq(t, `{"room":"A"}`, string(got[0].Metadata))

	assert.Nil(t, got[1].Outcome)
	assert.Nil(t, got[1].NextFollowUp)
	assert.Nil(t, got[1].Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Create_MissingReference(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTaskRepository(db)

	task, err := entity.NewTask("Call back", "user-1", "user-1")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolation})

	err = repo.Create(context.Background(), task)
	assert.ErrorIs(t, err, entity.ErrReferenceNotFound)
}

func TestDashboardRepository_Summary(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM leads)")).
		WillReturnRows(sqlmock.NewRows([]string{"l", "c", "ct", "a", "p", "o", "avg", "i"}).
			AddRow(8, 3, 5, 12, 4, 1, 47.333333, 6))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM leads GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("NEW", 5).AddRow("WON", 2).AddRow("LOST", 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM leads GROUP BY 1")).
		WillReturnRows(sqlmock.NewRows([]string{"source", "count"}).
			AddRow("WEBSITE", 6).AddRow("UNKNOWN", 2))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY score DESC")).
		WithArgs(topLeadsLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "company", "status", "score"}).
			AddRow("lead-1", "Ana", "Souza", "Acme", "QUALIFIED", 91))

	s, err := repo.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, s.TotalLeads)
	assert.Equal(t, 47.33, s.AverageLeadScore)
	assert.Equal(t, 25.0, s.ConversionRate)
	assert.Equal(t, 2, s.LeadsByStatus["WON"])
	assert.Equal(t, 6, s.LeadsBySource["WEBSITE"])
	require.Len(t, s.TopLeads, 1)
	assert.Equal(t, "Ana Souza", s.TopLeads[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	db, mock := newMock(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE leads SET status").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.WithinTx(context.Background(), func(ctx context.Context, s entity.Stores) error {
		return s.Leads().UpdateStatus(ctx, "lead-1", entity.LeadStatusWon)
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()

	err = uow.WithinTx(context.Background(), func(ctx context.Context, s entity.Stores) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	db, mock := newMock(t)
	for range schema {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilter(t *testing.T) {
	var f filter
	assert.Empty(t, f.where())

	f.add("a = ?", 1)
	f.add("(b ILIKE ? OR c ILIKE ?)", "%x%")
	assert.Equal(t, " WHERE a = $1 AND (b ILIKE $2 OR c ILIKE $2)", f.where())

	limit, args := f.paginate(10, 30)
	assert.Equal(t, " LIMIT $3 OFFSET $4", limit)
	assert.Equal(t, []any{1, "%x%", 10, 30}, args)
	assert.Len(t, f.args, 2)
}
