package xerrors

import (
	"context"
	"log/slog"

	"github.com/garrettladley/sugang/internal/xslog"
)

// Log records err at a level matching its kind. Expected degradations
// (probe misses, timeouts) are warnings; everything else is an error.
func Log(ctx context.Context, msg string, err error, attrs ...any) {
	if err == nil {
		return
	}
	logger := xslog.FromContext(ctx)

	kind := KindOf(err)
	attrs = append(attrs, slog.String("kind", string(kind)), xslog.Error(err))
	if e := As(err); e != nil && e.Validation != nil {
		attrs = append(attrs, slog.Any("validation", e.Validation.Fields))
	}

	switch kind {
	case KindProbeMiss, KindNetworkTimeout, KindValidation, KindNotFound:
		logger.WarnContext(ctx, msg, attrs...)
	default:
		logger.ErrorContext(ctx, msg, attrs...)
	}
}
