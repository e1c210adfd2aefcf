package database

import (
	"context"
	"math"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const topLeadsLimit = 5

type DashboardRepository struct {
	DB DBTX
}

func NewDashboardRepository(db DBTX) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) Summary(ctx context.Context) (*entity.DashboardSummary, error) {
	s := &entity.DashboardSummary{
		LeadsByStatus: map[string]int{},
		LeadsBySource: map[string]int{},
		TopLeads:      []entity.LeadSummary{},
	}

	totals := `
		SELECT
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM activities),
			(SELECT COUNT(*) FROM tasks WHERE status IN ('PENDING', 'IN_PROGRESS')),
			(SELECT COUNT(*) FROM tasks WHERE status = 'OVERDUE'
				OR (status IN ('PENDING', 'IN_PROGRESS') AND due_date < NOW())),
			(SELECT COALESCE(AVG(score), 0)::float8 FROM leads),
			(SELECT COUNT(*) FROM lead_interactions WHERE created_at >= NOW() - INTERVAL '7 days')
	`
	err := r.DB.QueryRowContext(ctx, totals).Scan(
		&s.TotalLeads, &s.TotalClients, &s.TotalContacts, &s.TotalActivities,
		&s.PendingTasks, &s.OverdueTasks, &s.AverageLeadScore, &s.InteractionsLast7Days,
	)
	if err != nil {
		return nil, err
	}
	s.AverageLeadScore = round2(s.AverageLeadScore)

	if err := r.groupCount(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`, s.LeadsByStatus); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx,
		`SELECT COALESCE(NULLIF(source, ''), 'UNKNOWN'), COUNT(*) FROM leads GROUP BY 1`, s.LeadsBySource); err != nil {
		return nil, err
	}

	if s.TotalLeads > 0 {
		won := s.LeadsByStatus[string(entity.LeadStatusWon)]
		s.ConversionRate = round2(float64(won) / float64(s.TotalLeads) * 100)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, first_name, last_name, company, status, score
		FROM leads
		ORDER BY score DESC, updated_at DESC
		LIMIT $1
	`, topLeadsLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l           entity.LeadSummary
			first, last string
		)
		if err := rows.Scan(&l.ID, &first, &last, &l.Company, &l.Status, &l.Score); err != nil {
			return nil, err
		}
		l.Name = (&entity.Lead{FirstName: first, LastName: last}).FullName()
		s.TopLeads = append(s.TopLeads, l)
	}
	return s, rows.Err()
}

func (r *DashboardRepository) groupCount(ctx context.Context, query string, into map[string]int) error {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
