package finance

import (
	"incubator/models"
	"time"
)

// TransactionType is the direction of money in the ledger
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one ledger entry of a user's business finances
type Transaction struct {
	models.UUIDModel
	UserID        string          `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Type          TransactionType `json:"type" gorm:"type:varchar(20);index;not null"`
	Category      string          `json:"category" gorm:"type:varchar(100);not null"`
	Amount        float64         `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Date          time.Time       `json:"date" gorm:"index;not null"`
	PaymentMethod string          `json:"payment_method" gorm:"type:varchar(50);default:'cash'"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
