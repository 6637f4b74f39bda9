package expenses

import (
	"context"

	expensesdomain "tiptrip-go/internal/domain/expenses"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateExpense inserts the expense and its shares in one transaction.
func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shares := expense.Shares
		if err := tx.Omit("Shares").Create(expense).Error; err != nil {
			return err
		}
		for i := range shares {
			shares[i].ExpenseID = expense.ID
		}
		if len(shares) > 0 {
			if err := tx.Create(&shares).Error; err != nil {
				return err
			}
		}
		expense.Shares = shares
		return nil
	})
}

func (r *PostgresRepository) ListExpensesByTrip(ctx context.Context, tripID int64) ([]expensesdomain.Expense, error) {
	var items []expensesdomain.Expense
	err := r.db.WithContext(ctx).
		Preload("Shares", func(db *gorm.DB) *gorm.DB {
			return db.Order("expense_shares.id asc")
		}).
		Where("trip_id = ?", tripID).
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
