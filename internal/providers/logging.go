package providers

import (
	"context"
	"log/slog"

	"bracket-service/internal/logging"
)

// fetchWarn emits a warning for a fetch decorator, preferring the
// request-scoped logger and always tagging the fetch operation.
func fetchWarn(ctx context.Context, fallback *slog.Logger, op, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	args = append(args, slog.String("op", op))
	logger.Warn(msg, args...)
}
