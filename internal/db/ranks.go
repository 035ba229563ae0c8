package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/models"
)

func listRanks(ctx context.Context, database *sql.DB, order string) ([]models.Rank, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT id, name, min_score, color, icon, sort_order FROM ranks ORDER BY min_score `+order)
	if err != nil {
		return nil, fmt.Errorf("list ranks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Rank
	for rows.Next() {
		var r models.Rank
		if err := rows.Scan(&r.ID, &r.Name, &r.MinScore, &r.Color, &r.Icon, &r.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListRanks — лестница снизу вверх, как её показывает публичная страница.
func ListRanks(ctx context.Context, database *sql.DB) ([]models.Rank, error) {
	return listRanks(ctx, database, "ASC")
}

// ListRanksDesc — сверху вниз, в порядке, который ждут models.RankFor/NextRankFor.
func ListRanksDesc(ctx context.Context, database *sql.DB) ([]models.Rank, error) {
	return listRanks(ctx, database, "DESC")
}

func CreateRank(ctx context.Context, database *sql.DB, r models.Rank) (models.Rank, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	err := database.QueryRowContext(ctx, `
INSERT INTO ranks (name, min_score, color, icon, sort_order)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, r.Name, r.MinScore, r.Color, r.Icon, r.SortOrder).Scan(&r.ID)
	if err != nil {
		return r, fmt.Errorf("create rank: %w", err)
	}
	return r, nil
}

func UpdateRank(ctx context.Context, database *sql.DB, r models.Rank) (models.Rank, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `
UPDATE ranks SET name = $2, min_score = $3, color = $4, icon = $5, sort_order = $6
WHERE id = $1`, r.ID, r.Name, r.MinScore, r.Color, r.Icon, r.SortOrder)
	if err != nil {
		return r, fmt.Errorf("update rank: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r, ErrNotFound
	}
	return r, nil
}

func DeleteRank(ctx context.Context, database *sql.DB, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM ranks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rank: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
