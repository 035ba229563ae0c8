package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/DMH695/score/internal/ctxutil"
	"github.com/DMH695/score/internal/models"
)

var ErrNotFound = errors.New("запись не найдена")

const studentCols = `id, student_no, name, score, created_at, updated_at`

func scanStudent(row interface{ Scan(...any) error }) (models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.StudentNo, &s.Name, &s.Score, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListStudents — все ученики в порядке таблицы лидеров:
// баллы по убыванию, при равенстве — по номеру.
func ListStudents(ctx context.Context, database *sql.DB) ([]models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT `+studentCols+` FROM students
ORDER BY score DESC, student_no ASC`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func GetStudent(ctx context.Context, database *sql.DB, id int64) (models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s, err := scanStudent(database.QueryRowContext(ctx, `
SELECT `+studentCols+` FROM students WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

// SearchStudents — подстрочный поиск по имени или номеру ученика.
func SearchStudents(ctx context.Context, database *sql.DB, keyword string) ([]models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT `+studentCols+` FROM students
WHERE name LIKE '%' || $1 || '%' OR student_no LIKE '%' || $1 || '%'
ORDER BY score DESC, student_no ASC`, keyword)
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func CreateStudent(ctx context.Context, database *sql.DB, studentNo, name string) (models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s, err := scanStudent(database.QueryRowContext(ctx, `
INSERT INTO students (student_no, name)
VALUES ($1, $2)
RETURNING `+studentCols, studentNo, name))
	if err != nil {
		return s, fmt.Errorf("create student: %w", err)
	}
	return s, nil
}

func UpdateStudent(ctx context.Context, database *sql.DB, id int64, studentNo, name string) (models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s, err := scanStudent(database.QueryRowContext(ctx, `
UPDATE students SET student_no = $2, name = $3, updated_at = now()
WHERE id = $1
RETURNING `+studentCols, id, studentNo, name))
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	return s, err
}

// DeleteStudent удаляет ученика вместе с его записями о баллах.
func DeleteStudent(ctx context.Context, database *sql.DB, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM score_records WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// BatchCreateStudents — массовое добавление (импорт списка класса).
// Всё или ничего: одна транзакция.
func BatchCreateStudents(ctx context.Context, database *sql.DB, in []models.Student) ([]models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]models.Student, 0, len(in))
	for _, s := range in {
		created, err := scanStudent(tx.QueryRowContext(ctx, `
INSERT INTO students (student_no, name)
VALUES ($1, $2)
RETURNING `+studentCols, s.StudentNo, s.Name))
		if err != nil {
			return nil, fmt.Errorf("batch create %q: %w", s.StudentNo, err)
		}
		out = append(out, created)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountHigherScores — сколько учеников строго выше по баллам.
// Место в рейтинге на детальной странице = это число + 1.
func CountHigherScores(ctx context.Context, database *sql.DB, score int) (int64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var n int64
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM students WHERE score > $1`, score).Scan(&n)
	return n, err
}
