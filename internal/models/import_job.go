package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportJobType is the source of an import job.
type ImportJobType string

const (
	ImportJobTypeProviderSync ImportJobType = "provider_sync"
	ImportJobTypeBulkUpload   ImportJobType = "bulk_upload"
)

// Valid reports whether the type is one of the known import job types.
func (t ImportJobType) Valid() bool {
	return t == ImportJobTypeProviderSync || t == ImportJobTypeBulkUpload
}

// ImportJobStatus is the state of an import job.
//
// Jobs start out as pending, move to processing when the first batch
// starts, and end in either completed or failed.
type ImportJobStatus string

const (
	ImportJobStatusPending    ImportJobStatus = "pending"
	ImportJobStatusProcessing ImportJobStatus = "processing"
	ImportJobStatusCompleted  ImportJobStatus = "completed"
	ImportJobStatusFailed     ImportJobStatus = "failed"
)

// Valid reports whether the status is one of the known import job states.
func (s ImportJobStatus) Valid() bool {
	return s == ImportJobStatusPending || s == ImportJobStatusProcessing || s == ImportJobStatusCompleted || s == ImportJobStatusFailed
}

// Terminal reports whether the status is final. Terminal jobs are immutable.
func (s ImportJobStatus) Terminal() bool {
	return s == ImportJobStatusCompleted || s == ImportJobStatusFailed
}

// ImportJob tracks the progress and outcome of an asynchronous import.
//
// The counters are owned exclusively by the import orchestrator, which is
// their only writer. Everything else reads them through queries.
type ImportJob struct {
	DefaultModel
	AccountID *uuid.UUID // nil for multi-account jobs
	Account   *Account   `json:"-"`
	Type      ImportJobType
	Status    ImportJobStatus `gorm:"default:pending"`

	// TotalItems is 0 until the source has been sized. For chunked sources
	// it grows as chunks are sized.
	TotalItems     uint
	ProcessedItems uint
	SyncedItems    uint
	SkippedItems   uint
	ErrorItems     uint

	// ErrorMessage is set when the job fails.
	ErrorMessage *string
}

var (
	ErrImportJobFinal              = errors.New("the import job has finished and can no longer be changed")
	ErrImportJobCountersInvalid    = errors.New("the import job counters do not add up")
	ErrImportJobProcessedOverTotal = errors.New("the import job has processed more items than the total")
)

// Progress returns the progress of the job in percent, clamped to 0-100.
// It is 0 while the total item count is still unknown.
func (j ImportJob) Progress() float64 {
	if j.TotalItems == 0 {
		return 0
	}

	progress := float64(j.ProcessedItems) / float64(j.TotalItems) * 100
	if progress > 100 {
		return 100
	}

	return progress
}

// BeforeSave verifies the consistency of the job.
//
// processedItems == syncedItems + skippedItems + errorItems has to hold at
// every observation point, as does processedItems <= totalItems once the
// total is known.
func (j *ImportJob) BeforeSave(_ *gorm.DB) error {
	if !j.Type.Valid() {
		return fmt.Errorf("%q is not a valid import job type", j.Type)
	}

	if j.Status == "" {
		j.Status = ImportJobStatusPending
	}

	if !j.Status.Valid() {
		return fmt.Errorf("%q is not a valid import job status", j.Status)
	}

	if j.ProcessedItems != j.SyncedItems+j.SkippedItems+j.ErrorItems {
		return ErrImportJobCountersInvalid
	}

	if j.TotalItems != 0 && j.ProcessedItems > j.TotalItems {
		return ErrImportJobProcessedOverTotal
	}

	// Ensure that the account ID is nil and not a pointer to a nil UUID
	if j.AccountID != nil && *j.AccountID == uuid.Nil {
		j.AccountID = nil
	}

	return nil
}

// BeforeUpdate rejects updates to jobs that have reached a terminal state.
func (j *ImportJob) BeforeUpdate(tx *gorm.DB) error {
	var current ImportJob
	err := tx.Where(&ImportJob{DefaultModel: DefaultModel{ID: j.ID}}).First(&current).Error
	if err != nil {
		return err
	}

	if current.Status.Terminal() {
		return ErrImportJobFinal
	}

	return nil
}
