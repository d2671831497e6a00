// Package importer implements the transaction import and synchronization
// engine: mapping of provider records into transactions, deduplication,
// batched application to the ledger and the import job lifecycle.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pocketledger/backend/internal/provider"
)

// Result holds the counters of an import run.
type Result struct {
	TotalItems     uint `json:"totalItems"`
	ProcessedItems uint `json:"processedItems"`
	SyncedItems    uint `json:"syncedItems"`
	SkippedItems   uint `json:"skippedItems"`
	ErrorItems     uint `json:"errorItems"`
}

// recalc keeps the processed counter consistent with its parts. It holds
// at every point where the result can be observed.
func (r *Result) recalc() {
	r.ProcessedItems = r.SyncedItems + r.SkippedItems + r.ErrorItems
}

// BatchResult holds the per-record outcomes of one committed batch.
type BatchResult struct {
	Applied            uint
	DuplicateConflicts uint
	Failed             uint
}

// Mapping errors for malformed candidate records. Each one is counted as a
// single record error, they never abort a batch.
var (
	ErrRecordWithoutID      = errors.New("the record has no external ID")
	ErrRecordWithoutDate    = errors.New("the record has no date")
	ErrRecordInvalidAmount  = errors.New("the record amount is missing or not a number")
	ErrRecordUnknownAccount = errors.New("the record references an unknown account")
)

// MappingError wraps the reason a candidate record could not be mapped.
type MappingError struct {
	ExternalID string
	Err        error
}

func (e MappingError) Error() string {
	if e.ExternalID == "" {
		return fmt.Sprintf("record could not be imported: %s", e.Err)
	}

	return fmt.Sprintf("record %q could not be imported: %s", e.ExternalID, e.Err)
}

func (e MappingError) Unwrap() error {
	return e.Err
}

// Source delivers candidate records in chunks.
type Source interface {
	// Estimate returns the expected total number of records. 0 means the
	// total is unknown until the source is exhausted.
	Estimate() int

	// Next returns the next chunk of records. It returns io.EOF when the
	// source is exhausted, possibly together with the final chunk.
	Next(ctx context.Context) ([]provider.CandidateRecord, error)
}

// SliceSource is a Source over an in-memory record set, used for bulk
// uploads where the full set is parsed up front.
type SliceSource struct {
	records []provider.CandidateRecord
	offset  int
	chunk   int
}

// NewSliceSource returns a SliceSource delivering the records in chunks of
// chunkSize.
func NewSliceSource(records []provider.CandidateRecord, chunkSize int) *SliceSource {
	if chunkSize <= 0 {
		chunkSize = len(records)
	}

	return &SliceSource{records: records, chunk: chunkSize}
}

func (s *SliceSource) Estimate() int {
	return len(s.records)
}

func (s *SliceSource) Next(_ context.Context) ([]provider.CandidateRecord, error) {
	if s.offset >= len(s.records) {
		return nil, io.EOF
	}

	end := s.offset + s.chunk
	if end > len(s.records) {
		end = len(s.records)
	}

	records := s.records[s.offset:end]
	s.offset = end

	return records, nil
}

// ProviderSource is a Source that pages through a provider.Client feed for
// one account.
type ProviderSource struct {
	Client     provider.Client
	AccountRef string

	cursor string
	total  int
	done   bool
}

func (s *ProviderSource) Estimate() int {
	return s.total
}

func (s *ProviderSource) Next(ctx context.Context) ([]provider.CandidateRecord, error) {
	if s.done {
		return nil, io.EOF
	}

	page, err := s.Client.Transactions(ctx, s.AccountRef, s.cursor)
	if err != nil {
		return nil, err
	}

	s.cursor = page.NextCursor
	if page.Total > s.total {
		s.total = page.Total
	}

	if s.cursor == "" {
		s.done = true
	}

	if len(page.Records) == 0 {
		return nil, io.EOF
	}

	return page.Records, nil
}
