package importer

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Notifier is notified whenever an import job changes.
//
// It is an optional push channel for clients that do not want to poll the
// job read API. Polling alone is always sufficient, implementations must
// not be load-bearing for correctness.
type Notifier interface {
	JobUpdated(job models.ImportJob)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) JobUpdated(models.ImportJob) {}

// LogNotifier logs job changes. It is the default notifier.
type LogNotifier struct{}

func (LogNotifier) JobUpdated(job models.ImportJob) {
	event := log.Debug()
	if job.Status.Terminal() {
		event = log.Info()
	}

	event.
		Str("job", job.ID.String()).
		Str("status", string(job.Status)).
		Uint("total", job.TotalItems).
		Uint("processed", job.ProcessedItems).
		Uint("synced", job.SyncedItems).
		Uint("skipped", job.SkippedItems).
		Uint("errors", job.ErrorItems).
		Msg("import job updated")
}
