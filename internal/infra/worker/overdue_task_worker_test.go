package worker

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

func newWorker(t *testing.T) (*OverdueTaskWorker, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	w := NewOverdueTaskWorker(db, time.Minute, logger.NewTestLogger(t))
	w.now = func() time.Time { return now }
	return w, mock, now
}

func TestMarkOverdue(t *testing.T) {
	w, mock, now := newWorker(t)

	rows := sqlmock.NewRows([]string{"id", "assigned_to", "due_date"}).
		AddRow("task-1", "user-1", now.Add(-2*time.Hour)).
		AddRow("task-2", "user-2", now.Add(-time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).WithArgs(now).WillReturnRows(rows)

	assert.Equal(t, 2, w.markOverdue(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOverdue_QueryError(t *testing.T) {
	w, mock, now := newWorker(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).WithArgs(now).WillReturnError(errors.New("connection reset"))

	assert.Equal(t, 0, w.markOverdue(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStart_StopsOnCancel(t *testing.T) {
	w, mock, now := newWorker(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "assigned_to", "due_date"}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return mock.ExpectationsWereMet() == nil }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestNewOverdueTaskWorker_DefaultInterval(t *testing.T) {
	w := NewOverdueTaskWorker(nil, 0, logger.NewNoOpLogger())
	assert.Equal(t, 5*time.Minute, w.tickInterval)
}
