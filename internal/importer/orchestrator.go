package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Config holds the tunables of the import engine.
type Config struct {
	// SyncThreshold is the item count at and above which an import runs as
	// a background job. Below it the pipeline runs inline and the result is
	// returned to the caller directly.
	SyncThreshold int

	// BatchSize bounds how many records are committed per storage
	// transaction.
	BatchSize int

	// BatchPause throttles write pressure between batches. It only applies
	// to background jobs, synchronous imports skip it entirely.
	BatchPause time.Duration

	// ProgressEvery is roughly how many processed records pass between
	// persisted job counter updates. Lower values give finer progress at
	// the cost of write volume.
	ProgressEvery int

	// FetchRetries bounds how often a transient provider error is retried
	// before it is promoted to a fatal one.
	FetchRetries int

	// RetryBackoff is the base delay between fetch retries. It grows
	// linearly with the attempt.
	RetryBackoff time.Duration
}

// DefaultConfig returns the default import engine configuration.
func DefaultConfig() Config {
	return Config{
		SyncThreshold: 1000,
		BatchSize:     20,
		BatchPause:    100 * time.Millisecond,
		ProgressEvery: 100,
		FetchRetries:  3,
		RetryBackoff:  time.Second,
	}
}

// Orchestrator drives imports: it decides between synchronous and
// background execution, feeds chunks through dedup, mapping and the batch
// applier, and is the only writer of import job counters.
type Orchestrator struct {
	Config   Config
	Notifier Notifier

	newResolver func() (Resolver, error)
}

// New returns an Orchestrator. The resolver factory is called once per
// import run so that every run sees the current category rules; a nil
// factory disables category suggestions. A nil notifier disables
// notifications.
func New(config Config, resolver func() (Resolver, error), notifier Notifier) *Orchestrator {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	if resolver == nil {
		resolver = func() (Resolver, error) { return nil, nil }
	}

	return &Orchestrator{
		Config:      config,
		Notifier:    notifier,
		newResolver: resolver,
	}
}

// Import runs an import from source.
//
// Below the synchronous threshold the whole pipeline runs inline and the
// final counts are returned; no job is persisted. At and above the
// threshold - or when the source cannot estimate its size - a job is
// created in pending state, the pipeline runs in the background detached
// from ctx, and only the job is returned.
//
// accountID is the target account. It is nil for multi-account imports,
// where each record is resolved through its provider account reference.
//
// When ctx is cancelled during a synchronous import, the import stops
// after the current batch has been committed and the partial result is
// returned together with the context error. Background jobs are not
// affected by cancellation of the triggering request.
func (o *Orchestrator) Import(ctx context.Context, source Source, jobType models.ImportJobType, accountID *uuid.UUID) (*Result, *models.ImportJob, error) {
	estimate := source.Estimate()

	if estimate == 0 || estimate >= o.Config.SyncThreshold {
		job, err := o.startJob(source, jobType, accountID, estimate)
		return nil, job, err
	}

	result, err := o.run(ctx, source, nil, accountID)
	return result, nil, err
}

// startJob persists a pending job and starts the pipeline in the
// background, detached from the triggering request.
func (o *Orchestrator) startJob(source Source, jobType models.ImportJobType, accountID *uuid.UUID, estimate int) (*models.ImportJob, error) {
	job := models.ImportJob{
		AccountID:  accountID,
		Type:       jobType,
		Status:     models.ImportJobStatusPending,
		TotalItems: uint(estimate),
	}

	err := models.DB.Create(&job).Error
	if err != nil {
		return nil, err
	}

	o.Notifier.JobUpdated(job)

	// The goroutine gets its own copy. The caller serializes the returned
	// pending snapshot while the pipeline is already writing to the job.
	go func(job models.ImportJob) {
		_, err := o.run(context.Background(), source, &job, accountID)
		if err != nil {
			log.Error().Err(err).Str("job", job.ID.String()).Msg("import job failed")
		}
	}(job)

	return &job, nil
}

// run drives the pipeline over the full record set. job is nil for
// synchronous imports.
func (o *Orchestrator) run(ctx context.Context, source Source, job *models.ImportJob, accountID *uuid.UUID) (*Result, error) {
	result := &Result{}
	defer func() { countRecords(*result) }()

	resolver, err := o.newResolver()
	if err != nil {
		return result, o.fail(job, result, err)
	}
	mapper := Mapper{Resolver: resolver}

	estimate := source.Estimate()
	if estimate > 0 {
		result.TotalItems = uint(estimate)
	}

	// Multi-account imports resolve records by their provider account
	// reference
	var accounts []models.Account
	if accountID == nil {
		err := models.DB.Where("archived = ?", false).Find(&accounts).Error
		if err != nil {
			return result, o.fail(job, result, err)
		}
	}

	if job != nil {
		job.Status = models.ImportJobStatusProcessing
		err := o.flush(job, result)
		if err != nil {
			return result, err
		}
	}

	var sinceFlush uint

	for {
		records, err := o.fetch(ctx, source)
		if err != nil && !errors.Is(err, io.EOF) {
			return result, o.fail(job, result, err)
		}

		// A source may deliver its last records together with io.EOF,
		// they are still processed below
		done := errors.Is(err, io.EOF)

		// Sources that could not be sized up front grow the total as
		// chunks arrive. The end of the source is their completion signal.
		if estimate == 0 {
			result.TotalItems += uint(len(records))
		}

		for _, group := range o.groupRecords(records, accountID, accounts, result) {
			err := o.importGroup(ctx, mapper, group, job, result, &sinceFlush)
			if err != nil {
				return result, err
			}

			if job == nil && ctx.Err() != nil {
				break
			}
		}

		if job == nil && ctx.Err() != nil {
			return result, ctx.Err()
		}

		if done {
			break
		}
	}

	if job != nil {
		job.Status = models.ImportJobStatusCompleted
		err := o.flush(job, result)
		if err != nil {
			return result, err
		}

		jobCount.WithLabelValues(string(models.ImportJobStatusCompleted)).Inc()
	}

	return result, nil
}

// fetch reads the next chunk from the source, retrying transient provider
// errors with linear backoff. Exhausted retries are promoted to a fatal
// error.
func (o *Orchestrator) fetch(ctx context.Context, source Source) ([]provider.CandidateRecord, error) {
	var lastErr error

	for attempt := 0; attempt <= o.Config.FetchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * o.Config.RetryBackoff):
			}
		}

		records, err := source.Next(ctx)
		if err == nil || errors.Is(err, io.EOF) {
			return records, err
		}

		if !provider.IsTransient(err) {
			return nil, err
		}

		log.Warn().Err(err).Int("attempt", attempt+1).Msg("transient provider error, retrying fetch")
		lastErr = err
	}

	return nil, fmt.Errorf("provider retries exhausted: %w", lastErr)
}

// accountGroup is one chunk's worth of records for a single account.
type accountGroup struct {
	accountID uuid.UUID
	records   []provider.CandidateRecord
}

// groupRecords splits a chunk into per-account groups so that
// deduplication can run one bulk check per account. Records referencing an
// unknown account are counted as record errors.
func (o *Orchestrator) groupRecords(records []provider.CandidateRecord, accountID *uuid.UUID, accounts []models.Account, result *Result) []accountGroup {
	if accountID != nil {
		return []accountGroup{{accountID: *accountID, records: records}}
	}

	var groups []accountGroup
	for _, record := range records {
		idx := slices.IndexFunc(accounts, func(a models.Account) bool {
			return a.ExternalID != "" && a.ExternalID == record.AccountRef
		})
		if idx == -1 {
			log.Debug().Str("accountRef", record.AccountRef).Err(ErrRecordUnknownAccount).Msg("record could not be mapped")
			result.ErrorItems++
			continue
		}

		id := accounts[idx].ID
		gIdx := slices.IndexFunc(groups, func(g accountGroup) bool { return g.accountID == id })
		if gIdx == -1 {
			groups = append(groups, accountGroup{accountID: id})
			gIdx = len(groups) - 1
		}

		groups[gIdx].records = append(groups[gIdx].records, record)
	}

	result.recalc()
	return groups
}

// importGroup runs dedup, mapping and batched application for the records
// of one account.
func (o *Orchestrator) importGroup(ctx context.Context, mapper Mapper, group accountGroup, job *models.ImportJob, result *Result, sinceFlush *uint) error {
	records, duplicates, err := FilterNew(group.records, group.accountID)
	if err != nil {
		return o.fail(job, result, err)
	}

	result.SkippedItems += duplicates
	result.recalc()
	*sinceFlush += duplicates

	mapped := make([]models.Transaction, 0, len(records))
	for _, record := range records {
		transaction, err := mapper.Map(record, group.accountID)
		if err != nil {
			log.Debug().Err(err).Msg("record could not be mapped")
			result.ErrorItems++
			result.recalc()
			*sinceFlush++
			continue
		}

		mapped = append(mapped, transaction)
	}

	batchSize := o.Config.BatchSize
	if batchSize <= 0 {
		batchSize = len(mapped)
	}

	for start := 0; start < len(mapped); start += batchSize {
		end := min(start+batchSize, len(mapped))

		batch, err := Apply(mapped[start:end])
		if err != nil {
			return o.fail(job, result, err)
		}

		result.SyncedItems += batch.Applied
		result.SkippedItems += batch.DuplicateConflicts
		result.ErrorItems += batch.Failed
		result.recalc()
		*sinceFlush += batch.Applied + batch.DuplicateConflicts + batch.Failed

		if job != nil && *sinceFlush >= uint(o.Config.ProgressEvery) {
			err := o.flush(job, result)
			if err != nil {
				return err
			}

			*sinceFlush = 0
		}

		// The caller is gone. The batch above is committed, everything
		// after it is left for a later import.
		if job == nil && ctx.Err() != nil {
			return nil
		}

		// Pace background jobs so that large imports do not starve
		// interactive writers
		if job != nil && o.Config.BatchPause > 0 && end < len(mapped) {
			time.Sleep(o.Config.BatchPause)
		}
	}

	return nil
}

// flush persists the current counters to the job and notifies subscribers.
// The orchestrator is the only writer of these counters.
func (o *Orchestrator) flush(job *models.ImportJob, result *Result) error {
	// A source can deliver more records than it estimated. The total grows
	// so that processed never exceeds it.
	if result.TotalItems < result.ProcessedItems {
		result.TotalItems = result.ProcessedItems
	}

	job.TotalItems = result.TotalItems
	job.ProcessedItems = result.ProcessedItems
	job.SyncedItems = result.SyncedItems
	job.SkippedItems = result.SkippedItems
	job.ErrorItems = result.ErrorItems

	err := models.DB.Save(job).Error
	if err != nil {
		return err
	}

	o.Notifier.JobUpdated(*job)
	return nil
}

// fail transitions the job to failed with the error as its message and
// passes the error through for the synchronous path.
func (o *Orchestrator) fail(job *models.ImportJob, result *Result, err error) error {
	if job == nil {
		return err
	}

	message := err.Error()
	job.Status = models.ImportJobStatusFailed
	job.ErrorMessage = &message

	saveErr := o.flush(job, result)
	if saveErr != nil {
		log.Error().Err(saveErr).Str("job", job.ID.String()).Msg("could not mark import job as failed")
		return err
	}

	jobCount.WithLabelValues(string(models.ImportJobStatusFailed)).Inc()
	return err
}
