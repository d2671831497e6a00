package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a transaction by the direction of money flow.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense || t == TransactionTypeTransfer
}

// Transaction represents a transaction on an account.
type Transaction struct {
	DefaultModel
	AccountID uuid.UUID `gorm:"uniqueIndex:transaction_account_id_external_id"`
	Account   Account   `json:"-"`
	Date      time.Time // Time of day is currently only used for sorting
	Type      TransactionType
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Always non-negative, the sign is recoverable from Type
	Note      string
	Channel   string // The payment channel as reported by the provider, e.g. "online"

	// ExternalID is the ID of the transaction at the external bank-data
	// provider. It is the deduplication key for imports and must be unique
	// per account. Manually created transactions have no external ID.
	ExternalID *string `gorm:"uniqueIndex:transaction_account_id_external_id"`

	// Category suggestions from the import. Both are hints, not
	// correctness-bearing values.
	CategoryID    *uuid.UUID
	Category      *Category `json:"-"`
	SubcategoryID *uuid.UUID
	Subcategory   *Category `json:"-" gorm:"foreignKey:SubcategoryID"`
}

var (
	ErrTransactionExternalIDNotUnique = errors.New("a transaction with this external ID already exists for the account")
	ErrTransactionAmountNegative      = errors.New("the transaction amount must not be negative")
)

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - sets the timezone for the Date to UTC
//   - verifies that the type and amount are valid
//   - trims whitespace from string fields
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)
	t.Channel = strings.TrimSpace(t.Channel)

	// An empty external ID must be stored as NULL so that it is not
	// part of the uniqueness constraint
	if t.ExternalID != nil && strings.TrimSpace(*t.ExternalID) == "" {
		t.ExternalID = nil
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%q is not a valid transaction type", t.Type)
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	return nil
}
