package worker

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/logger"
)

const markOverdueQuery = `
	UPDATE tasks
	SET
		status = 'OVERDUE',
		updated_at = NOW()
	WHERE
		status IN ('PENDING', 'IN_PROGRESS')
		AND due_date IS NOT NULL
		AND due_date < $1
	RETURNING id, assigned_to, due_date
`

// OverdueTaskWorker marks open tasks past their due date as OVERDUE.
type OverdueTaskWorker struct {
	db           database.DBTX
	log          logger.Logger
	tickInterval time.Duration
	now          func() time.Time
}

func NewOverdueTaskWorker(db database.DBTX, interval time.Duration, log logger.Logger) *OverdueTaskWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &OverdueTaskWorker{db: db, log: log, tickInterval: interval, now: time.Now}
}

func (w *OverdueTaskWorker) Start(ctx context.Context) {
	w.log.Info("overdue task worker started", map[string]interface{}{"interval": w.tickInterval.String()})

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.markOverdue(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("overdue task worker stopped", nil)
			return
		case <-ticker.C:
			w.markOverdue(ctx)
		}
	}
}

// markOverdue returns how many tasks changed; failures are logged and retried on the next tick.
func (w *OverdueTaskWorker) markOverdue(ctx context.Context) int {
	rows, err := w.db.QueryContext(ctx, markOverdueQuery, w.now())
	if err != nil {
		w.log.Error("failed to mark overdue tasks", map[string]interface{}{"error": err})
		return 0
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var taskID, assignee string
		var due time.Time
		if err := rows.Scan(&taskID, &assignee, &due); err != nil {
			w.log.Warn("failed to scan overdue task", map[string]interface{}{"error": err})
			continue
		}
		w.log.Debug("task overdue", map[string]interface{}{
			"task_id":     taskID,
			"assigned_to": assignee,
			"late_by":     w.now().Sub(due).Round(time.Minute).String(),
		})
		count++
	}
	if err := rows.Err(); err != nil {
		w.log.Error("overdue task scan interrupted", map[string]interface{}{"error": err})
	}

	if count > 0 {
		w.log.Info("tasks marked overdue", map[string]interface{}{"count": count})
	}
	return count
}
