package jobs

import (
	"context"
	"database/sql"
	"time"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/metrics"
	"github.com/DMH695/score/internal/observability"
)

// DBPing — фоновая проверка соединения с БД; латентность уходит в метрики,
// ошибки — в Sentry.
func DBPing(database *sql.DB) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		t0 := time.Now()
		if err := database.PingContext(ctx); err != nil {
			observability.CaptureErr(err)
			return err
		}
		metrics.ObserveDBPing(time.Since(t0))
		return nil
	}
}
