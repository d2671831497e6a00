package importer

import (
	"errors"
	"fmt"

	"github.com/pocketledger/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Apply commits one bounded batch of mapped transactions in a single
// storage transaction and returns the per-record outcomes.
//
// A uniqueness violation on the external ID reclassifies the record as a
// duplicate conflict without aborting the rest of the batch. This is the
// authoritative deduplication check; FilterNew only reduces the work that
// gets here. Any other per-record error is counted as failed.
//
// A storage-level failure (begin or commit fails, database gone) aborts
// the batch and is returned as an error. The caller treats it as fatal.
func Apply(transactions []models.Transaction) (BatchResult, error) {
	var result BatchResult

	if len(transactions) == 0 {
		return result, nil
	}

	tx := models.DB.Begin()
	if tx.Error != nil {
		return result, fmt.Errorf("could not start batch transaction: %w", tx.Error)
	}

	for i := range transactions {
		err := tx.Create(&transactions[i]).Error
		switch {
		case err == nil:
			result.Applied++
		case errors.Is(err, models.ErrTransactionExternalIDNotUnique):
			// Lost the race against a concurrent import, the record
			// already exists
			result.DuplicateConflicts++
		case errors.Is(err, models.ErrGeneral):
			tx.Rollback()
			return BatchResult{}, err
		default:
			log.Debug().Err(err).Msg("record failed in batch")
			result.Failed++
		}
	}

	err := tx.Commit().Error
	if err != nil {
		return BatchResult{}, fmt.Errorf("could not commit batch: %w", err)
	}

	return result, nil
}
