package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Account represents a bank account whose transactions are imported
// into the ledger.
type Account struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex"`
	Note        string
	Institution string
	ExternalID  string // The ID of this account at the external bank-data provider
	Archived    bool
}

var ErrAccountNameNotUnique = errors.New("the account name must be unique")

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	a.Institution = strings.TrimSpace(a.Institution)
	a.ExternalID = strings.TrimSpace(a.ExternalID)

	return nil
}
