package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/models"
)

func ListTemplates(ctx context.Context, database *sql.DB) ([]models.ScoreTemplate, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT id, name, value, category FROM score_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScoreTemplate
	for rows.Next() {
		var t models.ScoreTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Value, &t.Category); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func CreateTemplate(ctx context.Context, database *sql.DB, t models.ScoreTemplate) (models.ScoreTemplate, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	err := database.QueryRowContext(ctx, `
INSERT INTO score_templates (name, value, category)
VALUES ($1, $2, $3)
RETURNING id`, t.Name, t.Value, t.Category).Scan(&t.ID)
	if err != nil {
		return t, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

func UpdateTemplate(ctx context.Context, database *sql.DB, t models.ScoreTemplate) (models.ScoreTemplate, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `
UPDATE score_templates SET name = $2, value = $3, category = $4
WHERE id = $1`, t.ID, t.Name, t.Value, t.Category)
	if err != nil {
		return t, fmt.Errorf("update template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return t, ErrNotFound
	}
	return t, nil
}

func DeleteTemplate(ctx context.Context, database *sql.DB, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM score_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
