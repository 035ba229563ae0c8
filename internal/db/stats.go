package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/models"
)

func GetStatistics(ctx context.Context, database *sql.DB) (models.Statistics, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var st models.Statistics
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&st.TotalStudents); err != nil {
		return st, fmt.Errorf("count students: %w", err)
	}
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM score_records`).Scan(&st.TotalRecords); err != nil {
		return st, fmt.Errorf("count records: %w", err)
	}

	rows, err := database.QueryContext(ctx, `
SELECT category, COUNT(*), COALESCE(SUM(value), 0)
FROM score_records
GROUP BY category
ORDER BY category`)
	if err != nil {
		return st, fmt.Errorf("category stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cs models.CategoryStat
		if err := rows.Scan(&cs.Category, &cs.Count, &cs.Total); err != nil {
			return st, err
		}
		st.CategoryStats = append(st.CategoryStats, cs)
	}
	return st, rows.Err()
}

// ResetAllScores обнуляет баллы всех учеников и вычищает журнал целиком.
// Необратимо; снаружи защищено отдельным паролем сброса.
func ResetAllScores(ctx context.Context, database *sql.DB) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE students SET score = 0, updated_at = now()`); err != nil {
		return fmt.Errorf("reset scores: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM score_records`); err != nil {
		return fmt.Errorf("purge records: %w", err)
	}
	return tx.Commit()
}
