// Package bankcsv parses bank transaction exports in CSV format into
// candidate records for the import engine.
package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pocketledger/backend/internal/provider"
	"github.com/shopspring/decimal"
)

// Positions of the columns in the CSV file.
const (
	ID = iota
	Date
	Amount
	Description
	Category
	Tags
	Channel
)

// dateFormat is the date layout of the export files.
const dateFormat = "2006-01-02"

// Parse parses a bank CSV export.
//
// Rows with an unparsable date or amount are not dropped. They are
// returned as records that fail mapping so that the import counts them as
// record errors instead of rejecting the whole file. Only a structurally
// broken file is an error.
func Parse(f io.Reader) ([]provider.CandidateRecord, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	var records []provider.CandidateRecord

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return []provider.CandidateRecord{}, nil
	}
	if err != nil {
		return csvReadError(reader, err)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		record := provider.CandidateRecord{
			ExternalID:      strings.TrimSpace(row[ID]),
			Description:     strings.TrimSpace(row[Description]),
			PrimaryCategory: strings.TrimSpace(row[Category]),
			Channel:         strings.TrimSpace(row[Channel]),
		}

		if date, err := time.Parse(dateFormat, strings.TrimSpace(row[Date])); err == nil {
			record.Date = date
		}

		if amount, err := decimal.NewFromString(strings.TrimSpace(row[Amount])); err == nil {
			record.Amount = decimal.NewNullDecimal(amount)
		}

		for _, tag := range strings.Split(row[Tags], ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				record.CategoryTags = append(record.CategoryTags, tag)
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// csvReadError returns the error including the line of the input the error
// occurred in.
func csvReadError(r *csv.Reader, err error) ([]provider.CandidateRecord, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []provider.CandidateRecord{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
