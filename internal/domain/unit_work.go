package domain

import "context"

// UnitOfWork defines a transactional boundary over the catalog store
// repositories.
type UnitOfWork interface {
	// Execute runs the provided function within a single transaction.
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	// Products returns the ProductRepository bound to this unit of work.
	Products() ProductRepository
	// Outbox returns the OutboxRepository bound to this unit of work.
	Outbox() OutboxRepository
}
