package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"golang.org/x/text/cases"
)

// Provider category values that always mark a record as a transfer.
const (
	categoryTransferIn  = "TRANSFER_IN"
	categoryTransferOut = "TRANSFER_OUT"
)

// Mapper translates candidate records into transactions. It performs no
// I/O; category suggestions come from the Resolver.
type Mapper struct {
	Resolver Resolver
}

// Map translates one candidate record into a transaction for the account.
//
// Transfer detection takes priority over the sign of the amount. For
// everything else, a positive raw amount is money leaving the account
// (expense), a negative one is money coming in (income). The stored amount
// is always the absolute value.
//
// A malformed record yields a MappingError and is counted as one record
// error by the caller.
func (m Mapper) Map(record provider.CandidateRecord, accountID uuid.UUID) (models.Transaction, error) {
	externalID := strings.TrimSpace(record.ExternalID)
	if externalID == "" {
		return models.Transaction{}, MappingError{Err: ErrRecordWithoutID}
	}

	if record.Date.IsZero() {
		return models.Transaction{}, MappingError{ExternalID: externalID, Err: ErrRecordWithoutDate}
	}

	if !record.Amount.Valid {
		return models.Transaction{}, MappingError{ExternalID: externalID, Err: ErrRecordInvalidAmount}
	}

	transaction := models.Transaction{
		AccountID:  accountID,
		Date:       record.Date.In(time.UTC),
		Amount:     record.Amount.Decimal.Abs(),
		Note:       strings.TrimSpace(record.Description),
		Channel:    strings.TrimSpace(record.Channel),
		ExternalID: &externalID,
	}

	switch {
	case isTransfer(record):
		transaction.Type = models.TransactionTypeTransfer
	case record.Amount.Decimal.IsNegative():
		transaction.Type = models.TransactionTypeIncome
	default:
		transaction.Type = models.TransactionTypeExpense
	}

	if m.Resolver != nil {
		transaction.CategoryID, transaction.SubcategoryID = m.Resolver.Resolve(record)
	}

	return transaction, nil
}

// isTransfer reports whether the record is a transfer between accounts.
func isTransfer(record provider.CandidateRecord) bool {
	fold := cases.Fold()

	if fold.String(strings.TrimSpace(record.Channel)) == "transfer" {
		return true
	}

	for _, tag := range record.CategoryTags {
		folded := fold.String(tag)

		// Tags containing "wire" are deliberately excluded from the keyword
		// match and keep their sign-based classification. See the dedicated
		// test before changing this.
		if strings.Contains(folded, "transfer") && !strings.Contains(folded, "wire") {
			return true
		}
	}

	return record.PrimaryCategory == categoryTransferIn || record.PrimaryCategory == categoryTransferOut
}
