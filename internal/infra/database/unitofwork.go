package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type txStores struct {
	tx DBTX
}

func (s txStores) Leads() entity.LeadRepositoryInterface { return NewLeadRepository(s.tx) }
func (s txStores) Interactions() entity.InteractionRepositoryInterface {
	return NewInteractionRepository(s.tx)
}
func (s txStores) Tasks() entity.TaskRepositoryInterface     { return NewTaskRepository(s.tx) }
func (s txStores) Clients() entity.ClientRepositoryInterface { return NewClientRepository(s.tx) }

// PostgresUnitOfWork hands tx-scoped repositories to the callback.
type PostgresUnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{db: db}
}

func (u *PostgresUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, s entity.Stores) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, txStores{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
