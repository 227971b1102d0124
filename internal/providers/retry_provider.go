package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	domainbracket "bracket-service/internal/domain/bracket"
	"bracket-service/internal/domain/teams"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider wraps a BracketProvider with exponential backoff. Rate
// limit responses wait out the upstream Retry-After before the next attempt.
type retryingProvider struct {
	inner       BracketProvider
	logger      *slog.Logger
	maxAttempts uint64
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner BracketProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) BracketProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: uint64(maxAttempts),
		initial:     initial,
	}
}

func (r *retryingProvider) FetchScoreboard(ctx context.Context, league, dates string) (ScoreboardResult, error) {
	var result ScoreboardResult
	err := r.retry(ctx, "scoreboard", func() error {
		var err error
		result, err = r.inner.FetchScoreboard(ctx, league, dates)
		return err
	})
	return result, err
}

func (r *retryingProvider) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	var rankings []teams.Ranking
	err := r.retry(ctx, "standings", func() error {
		var err error
		rankings, err = r.inner.FetchStandings(ctx, standingsKey)
		return err
	})
	return rankings, err
}

func (r *retryingProvider) FetchCalendar(ctx context.Context, league string) ([]domainbracket.Stage, error) {
	var calendar []domainbracket.Stage
	err := r.retry(ctx, "calendar", func() error {
		var err error
		calendar, err = r.inner.FetchCalendar(ctx, league)
		return err
	})
	return calendar, err
}

func (r *retryingProvider) retry(ctx context.Context, op string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
			// Honor the upstream Retry-After before the next attempt.
			select {
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			case <-time.After(rl.RetryAfter):
			}
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, r.maxAttempts-1), ctx))

	if err != nil {
		fetchWarn(ctx, r.logger, op, "provider fetch failed", "attempts", attempt, "err", err)
	} else if attempt > 1 {
		fetchWarn(ctx, r.logger, op, "provider fetch recovered after retries", "attempts", attempt)
	}
	return err
}
