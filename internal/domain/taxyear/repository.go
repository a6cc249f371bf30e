package taxyear

import "context"

// AggregateRepository defines data access methods for tax-year aggregates.
type AggregateRepository interface {
	// Upsert replaces the stored aggregate for (user, year) wholesale.
	Upsert(ctx context.Context, aggregate Aggregate) (Aggregate, error)

	GetByYear(ctx context.Context, userID string, year Year) (Aggregate, error)
	ListByOwner(ctx context.Context, userID string) ([]Aggregate, error)

	// Delete removes the aggregate for a year that no longer has any
	// payslips behind it.
	Delete(ctx context.Context, userID string, year Year) error
}
