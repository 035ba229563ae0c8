package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open подключается к Postgres по DSN и проверяет соединение.
// Сервис стартует раньше БД в compose, поэтому пингуем с ретраями.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	database, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	database.SetMaxOpenConns(10)
	database.SetConnMaxIdleTime(5 * time.Minute)

	deadline := time.Now().Add(30 * time.Second)
	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = database.PingContext(pingCtx)
		cancel()
		if err == nil {
			return database, nil
		}
		if time.Now().After(deadline) {
			_ = database.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		time.Sleep(time.Second)
	}
}
