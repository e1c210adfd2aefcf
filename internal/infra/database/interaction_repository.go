package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

const interactionColumns = `id, lead_id, user_id, type, title, description, interaction_date,
	next_follow_up, duration_minutes, outcome, metadata, created_at`

type InteractionRepository struct {
	DB DBTX
}

func NewInteractionRepository(db DBTX) *InteractionRepository {
	return &InteractionRepository{DB: db}
}

func scanInteraction(s scanner) (*entity.Interaction, error) {
	var (
		i        entity.Interaction
		next     sql.NullTime
		duration sql.NullInt64
		outcome  sql.NullString
		metadata []byte
	)
	err := s.Scan(&i.ID, &i.LeadID, &i.UserID, &i.Type, &i.Title, &i.Description, &i.InteractionDate,
		&next, &duration, &outcome, &metadata, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	i.NextFollowUp = ptrTime(next)
	if duration.Valid {
		d := int(duration.Int64)
		i.DurationMinutes = &d
	}
	i.Outcome = ptrString(outcome)
	if len(metadata) > 0 {
		i.Metadata = metadata
	}
	return &i, nil
}

func (r *InteractionRepository) Create(ctx context.Context, i *entity.Interaction) error {
	query := `
		INSERT INTO lead_interactions (` + interactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	var metadata any
	if len(i.Metadata) > 0 {
		metadata = string(i.Metadata)
	}
	_, err := r.DB.ExecContext(ctx, query,
		i.ID, i.LeadID, i.UserID, i.Type, i.Title, i.Description, i.InteractionDate,
		i.NextFollowUp, i.DurationMinutes, i.Outcome, metadata, i.CreatedAt)
	return mapWriteError(err)
}

func (r *InteractionRepository) ListByLead(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+interactionColumns+` FROM lead_interactions WHERE lead_id = $1 ORDER BY created_at DESC`, leadID)
	if err != nil {
		if isInvalidID(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var interactions []*entity.Interaction
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}
