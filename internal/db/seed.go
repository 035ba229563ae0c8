package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DMH695/score/internal/models"
)

// Лестница рангов фиксированная: при каждом старте пересоздаём её целиком,
// чтобы правки в коде гарантированно доезжали до БД.
var defaultRanks = []models.Rank{
	{Name: "Новичок", MinScore: 0, Color: "#9CA3AF", Icon: "🌱", SortOrder: 1},
	{Name: "Бронза", MinScore: 20, Color: "#CD7F32", Icon: "🥉", SortOrder: 2},
	{Name: "Серебро", MinScore: 50, Color: "#A8A9AD", Icon: "🥈", SortOrder: 3},
	{Name: "Золото", MinScore: 100, Color: "#FFD700", Icon: "🏅", SortOrder: 4},
	{Name: "Платина", MinScore: 180, Color: "#00CED1", Icon: "💠", SortOrder: 5},
	{Name: "Алмаз", MinScore: 280, Color: "#B9F2FF", Icon: "💎", SortOrder: 6},
	{Name: "Мастер", MinScore: 400, Color: "#9400D3", Icon: "🔮", SortOrder: 7},
	{Name: "Грандмастер", MinScore: 550, Color: "#FF6B6B", Icon: "⭐", SortOrder: 8},
	{Name: "Чемпион", MinScore: 750, Color: "#FF4500", Icon: "👑", SortOrder: 9},
	{Name: "Легенда", MinScore: 1000, Color: "#FFD700", Icon: "🏆", SortOrder: 10},
}

var defaultTemplates = []models.ScoreTemplate{
	{Name: "Ответ у доски", Value: 2, Category: "Работа на уроке"},
	{Name: "Отличная домашняя работа", Value: 3, Category: "Домашняя работа"},
	{Name: "Прогресс в контрольной", Value: 5, Category: "Контрольные"},
	{Name: "Помощь однокласснику", Value: 2, Category: "Поведение"},
	{Name: "Опоздание", Value: -1, Category: "Дисциплина"},
	{Name: "Домашняя работа не сдана", Value: -2, Category: "Домашняя работа"},
	{Name: "Нарушение дисциплины", Value: -2, Category: "Дисциплина"},
}

func Seed(ctx context.Context, database *sql.DB) error {
	if err := seedRanks(ctx, database); err != nil {
		return fmt.Errorf("seed ranks: %w", err)
	}
	if err := seedTemplates(ctx, database); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}
	return nil
}

func seedRanks(ctx context.Context, database *sql.DB) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ranks`); err != nil {
		return err
	}
	for _, r := range defaultRanks {
		_, err := tx.ExecContext(ctx, `
INSERT INTO ranks (name, min_score, color, icon, sort_order)
VALUES ($1, $2, $3, $4, $5)`, r.Name, r.MinScore, r.Color, r.Icon, r.SortOrder)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func seedTemplates(ctx context.Context, database *sql.DB) error {
	// шаблоны редактируются через админку — наполняем только пустую таблицу
	var count int64
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM score_templates`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, t := range defaultTemplates {
		_, err := database.ExecContext(ctx, `
INSERT INTO score_templates (name, value, category)
VALUES ($1, $2, $3)`, t.Name, t.Value, t.Category)
		if err != nil {
			return err
		}
	}
	return nil
}
