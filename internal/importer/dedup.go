package importer

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
)

// FilterNew drops candidates whose external ID already exists for the
// account and returns the remaining candidates together with the number of
// duplicates.
//
// The existence check is a single bulk query for the whole chunk so that
// latency stays bounded as chunks grow. It is an optimization only: two
// overlapping imports for the same account can both pass this check, the
// uniqueness constraint enforced at commit time is the source of truth.
func FilterNew(records []provider.CandidateRecord, accountID uuid.UUID) ([]provider.CandidateRecord, uint, error) {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if id := strings.TrimSpace(record.ExternalID); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return records, 0, nil
	}

	var existing []string
	err := models.DB.
		Model(&models.Transaction{}).
		Where("account_id = ? AND external_id IN ?", accountID, ids).
		Pluck("external_id", &existing).Error
	if err != nil {
		return nil, 0, err
	}

	if len(existing) == 0 {
		return records, 0, nil
	}

	known := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	newRecords := make([]provider.CandidateRecord, 0, len(records))
	var duplicates uint
	for _, record := range records {
		if _, ok := known[strings.TrimSpace(record.ExternalID)]; ok {
			duplicates++
			continue
		}

		newRecords = append(newRecords, record)
	}

	return newRecords, duplicates, nil
}
