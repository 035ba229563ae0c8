package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/DMH695/score/internal/config"
	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/db"
	"github.com/DMH695/score/internal/httpapi"
	"github.com/DMH695/score/internal/jobs"
	"github.com/DMH695/score/internal/logging"
	"github.com/DMH695/score/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	ctxutil.DefaultDBTimeout = cfg.DBTimeout

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "scoreboard")
	if err != nil {
		lg.Sugar.Warnw("sentry не инициализирован", "err", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("ошибка подключения к БД", "err", err)
	}
	defer func() { _ = database.Close() }()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("миграция не удалась", "err", err)
	}
	if err := db.Seed(ctx, database); err != nil {
		lg.Sugar.Fatalw("наполнение справочников не удалось", "err", err)
	}

	runner := jobs.New(ctx)
	runner.Every(30*time.Second, "db_ping", jobs.DBPing(database))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(cfg, database, lg.Sugar),
	}

	go func() {
		lg.Sugar.Infow("сервер запущен", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Sugar.Fatalw("сервер остановился с ошибкой", "err", err)
		}
	}()

	<-ctx.Done()
	lg.Sugar.Info("останавливаемся...")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		lg.Sugar.Errorw("ошибка остановки сервера", "err", err)
	}
}
