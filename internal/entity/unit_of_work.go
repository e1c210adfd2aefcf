package entity

import "context"

// Stores exposes repositories bound to one transaction.
type Stores interface {
	Leads() LeadRepositoryInterface
	Interactions() InteractionRepositoryInterface
	Tasks() TaskRepositoryInterface
	Clients() ClientRepositoryInterface
}

// UnitOfWork runs fn inside a transaction; fn's error rolls everything back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
