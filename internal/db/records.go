package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/models"
)

// ModifyScore прибавляет ученику знакопеременную дельту и фиксирует запись
// об операции. Баллы и журнал меняются только вместе, в одной транзакции.
func ModifyScore(ctx context.Context, database *sql.DB, studentID int64, value int, reason, category string) (models.ScoreRecord, int, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var rec models.ScoreRecord
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return rec, 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var newScore int
	err = tx.QueryRowContext(ctx, `
UPDATE students SET score = score + $2, updated_at = now()
WHERE id = $1
RETURNING score`, studentID, value).Scan(&newScore)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, 0, ErrNotFound
	}
	if err != nil {
		return rec, 0, fmt.Errorf("update score: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
INSERT INTO score_records (student_id, value, reason, category)
VALUES ($1, $2, $3, $4)
RETURNING id, student_id, value, reason, category, created_at`,
		studentID, value, reason, category,
	).Scan(&rec.ID, &rec.StudentID, &rec.Value, &rec.Reason, &rec.Category, &rec.CreatedAt)
	if err != nil {
		return rec, 0, fmt.Errorf("insert record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return rec, 0, err
	}
	return rec, newScore, nil
}

// BatchModifyScore применяет одну дельту к нескольким ученикам.
// Неизвестные id молча пропускаются — так ведёт себя массовое начисление
// из админки, где список мог устареть между загрузкой и отправкой.
func BatchModifyScore(ctx context.Context, database *sql.DB, studentIDs []int64, value int, reason, category string) error {
	for _, id := range studentIDs {
		_, _, err := ModifyScore(ctx, database, id, value, reason, category)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// UndoRecord отменяет запись: возвращает ученику её значение и удаляет
// саму запись. Обе стороны — в одной транзакции, иначе журнал разойдётся
// с суммой баллов.
func UndoRecord(ctx context.Context, database *sql.DB, recordID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var studentID int64
	var value int
	err = tx.QueryRowContext(ctx, `
SELECT student_id, value FROM score_records WHERE id = $1`, recordID).Scan(&studentID, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE students SET score = score - $2, updated_at = now() WHERE id = $1`, studentID, value); err != nil {
		return fmt.Errorf("revert score: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM score_records WHERE id = $1`, recordID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return tx.Commit()
}

type RecordFilter struct {
	Page      int
	PageSize  int
	StudentID int64  // 0 — без фильтра
	Category  string // "" — без фильтра
}

// ListRecords — журнал операций, новые сверху, с вложенным срезом ученика.
func ListRecords(ctx context.Context, database *sql.DB, f RecordFilter) ([]models.ScoreRecord, int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}

	where := ` WHERE ($1 = 0 OR r.student_id = $1) AND ($2 = '' OR r.category = $2)`

	var total int64
	if err := database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM score_records r`+where, f.StudentID, f.Category).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	rows, err := database.QueryContext(ctx, `
SELECT r.id, r.student_id, r.value, r.reason, r.category, r.created_at,
       s.id, s.student_no, s.name, s.score, s.created_at, s.updated_at
FROM score_records r
JOIN students s ON s.id = r.student_id`+where+`
ORDER BY r.created_at DESC, r.id DESC
LIMIT $3 OFFSET $4`, f.StudentID, f.Category, f.PageSize, (f.Page-1)*f.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScoreRecord
	for rows.Next() {
		var r models.ScoreRecord
		var s models.Student
		err := rows.Scan(&r.ID, &r.StudentID, &r.Value, &r.Reason, &r.Category, &r.CreatedAt,
			&s.ID, &s.StudentNo, &s.Name, &s.Score, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		r.Student = &s
		out = append(out, r)
	}
	return out, total, rows.Err()
}

// RecordsByStudent — последние записи ученика для детальной страницы.
func RecordsByStudent(ctx context.Context, database *sql.DB, studentID int64, limit int) ([]models.ScoreRecord, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT id, student_id, value, reason, category, created_at
FROM score_records
WHERE student_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("records by student: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScoreRecord
	for rows.Next() {
		var r models.ScoreRecord
		if err := rows.Scan(&r.ID, &r.StudentID, &r.Value, &r.Reason, &r.Category, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
