package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/logger"
)

// pgxLogger routes pgx trace events into zerolog.
type pgxLogger struct {
	log zerolog.Logger
}

func newPgxLogger(log zerolog.Logger) *pgxLogger {
	return &pgxLogger{log: logger.Component(log, "repository", "pgx")}
}

var pgxToZerolog = map[tracelog.LogLevel]zerolog.Level{
	tracelog.LogLevelTrace: zerolog.TraceLevel,
	tracelog.LogLevelDebug: zerolog.DebugLevel,
	tracelog.LogLevelInfo:  zerolog.InfoLevel,
	tracelog.LogLevelWarn:  zerolog.WarnLevel,
	tracelog.LogLevelError: zerolog.ErrorLevel,
}

// traceLevel mirrors the zerolog level so pgx does not build events nobody will see.
func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch {
	case l <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case l <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case l <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case l <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}

// Log implements tracelog.Logger. Statement text and bind args only appear at
// trace level; catalog queries carry user search terms.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	zl, ok := pgxToZerolog[level]
	if !ok {
		return
	}
	ev := l.log.WithLevel(zl)
	if !ev.Enabled() {
		return
	}
	for k, v := range data {
		switch k {
		case "sql", "args":
			if zl == zerolog.TraceLevel {
				ev = ev.Interface(k, v)
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				ev = ev.Dur("took", d)
			} else {
				ev = ev.Interface(k, v)
			}
		default:
			ev = ev.Interface(k, v)
		}
	}
	ev.Msg(msg)
}
