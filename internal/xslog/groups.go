package xslog

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	groupError  = "error"
	groupSample = "sample"
)

const (
	keyType      = "type"
	keyValue     = "value"
	keyServer    = "server"
	keyFetchedAt = "fetched_at"
	keyOffsetMS  = "offset_ms"
)

func ErrorGroupWithStack(err any) slog.Attr {
	return slog.Group(groupError,
		slog.Any(keyValue, err),
		slog.String(keyType, fmt.Sprintf("%T", err)),
		Stack(),
	)
}

// SampleGroup describes a server-time reading.
func SampleGroup(source string, server, fetchedAt time.Time) slog.Attr {
	return slog.Group(groupSample,
		Source(source),
		slog.Time(keyServer, server),
		slog.Time(keyFetchedAt, fetchedAt),
		slog.Int64(keyOffsetMS, server.Sub(fetchedAt).Milliseconds()),
	)
}
