package expenses

import "time"

const (
	DefaultCurrency = "USD"

	ShareEqual   = "equal"
	SharePercent = "percent"
	ShareAmount  = "amount"

	maxCurrencyLength    = 10
	maxDescriptionLength = 500
)

type Expense struct {
	ID          int64     `gorm:"primaryKey"`
	TripID      int64     `gorm:"not null;index"`
	PayerUserID int64     `gorm:"not null"`
	Amount      float64   `gorm:"not null"`
	Currency    string    `gorm:"size:10;not null;default:USD"`
	Description string    `gorm:"size:500;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	Shares      []Share   `gorm:"foreignKey:ExpenseID"`
}

func (Expense) TableName() string {
	return "expenses"
}

// Share is the resolved amount one debtor owes toward an expense. ShareType
// is recorded as sent; Value is always the owed amount.
type Share struct {
	ID        int64   `gorm:"primaryKey"`
	ExpenseID int64   `gorm:"not null;index"`
	UserID    int64   `gorm:"not null"`
	ShareType string  `gorm:"size:20;not null;default:equal"`
	Value     float64 `gorm:"not null"`
}

func (Share) TableName() string {
	return "expense_shares"
}

type DebtorInput struct {
	UserID    int64
	ShareType string
	Value     float64
}

type CreateExpenseInput struct {
	Amount      float64
	Currency    string
	Description string
	Debtors     []DebtorInput
}

// Balance is a user's signed net position in one currency. Positive means
// the user should receive money.
type Balance struct {
	UserID   int64
	Currency string
	Amount   float64
}

type Settlement struct {
	FromUserID int64
	ToUserID   int64
	Amount     float64
	Currency   string
}
