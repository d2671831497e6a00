package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQueryThreshold is tuned for import batches: a single batch commit
// writing BatchSize rows should stay well below it.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger adapts gorm's logging to zerolog.
type queryLogger struct {
	log zerolog.Logger
}

func (l *queryLogger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *queryLogger) Info(_ context.Context, s string, args ...interface{}) {
	l.log.Info().Msgf(s, args...)
}

func (l *queryLogger) Warn(_ context.Context, s string, args ...interface{}) {
	l.log.Warn().Msgf(s, args...)
}

func (l *queryLogger) Error(_ context.Context, s string, args ...interface{}) {
	l.log.Error().Msgf(s, args...)
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	event := l.log.Debug()
	message := "query"

	switch {
	case err != nil && !errors.Is(err, ErrResourceNotFound):
		event = l.log.Error().Err(err)
		message = "query failed"
	case elapsed > slowQueryThreshold:
		event = l.log.Warn()
		message = "slow query"
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg(message)
}
