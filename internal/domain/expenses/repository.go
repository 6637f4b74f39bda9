package expenses

import "context"

type Repository interface {
	// CreateExpense stores the expense together with its shares.
	CreateExpense(ctx context.Context, expense *Expense) error
	// ListExpensesByTrip returns expenses newest first with shares loaded.
	ListExpensesByTrip(ctx context.Context, tripID int64) ([]Expense, error)
}
