//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/DMH695/score/internal/db"
	"github.com/DMH695/score/internal/models"
	"github.com/DMH695/score/internal/testutil/testdb"
)

var testDB *sql.DB

func TestMain(m *testing.M) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		log.Fatalf("не удалось поднять тестовый Postgres: %v", err)
	}
	testDB = h.DB
	code := m.Run()
	h.Close()
	os.Exit(code)
}

// truncate очищает таблицы между тестами; контейнер один на весь пакет.
func truncate(t *testing.T) {
	t.Helper()
	if _, err := testDB.Exec(`TRUNCATE score_records, students RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func mustStudent(t *testing.T, no, name string) models.Student {
	t.Helper()
	s, err := db.CreateStudent(context.Background(), testDB, no, name)
	if err != nil {
		t.Fatalf("create student %s: %v", no, err)
	}
	return s
}

func TestModifyScoreAndUndo(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := mustStudent(t, "001", "Алиса")

	rec, newScore, err := db.ModifyScore(ctx, testDB, s.ID, 10, "Домашняя работа", "Учёба")
	if err != nil {
		t.Fatal(err)
	}
	if newScore != 10 || rec.Value != 10 {
		t.Fatalf("после начисления счёт %d, запись %+d", newScore, rec.Value)
	}

	_, newScore, err = db.ModifyScore(ctx, testDB, s.ID, -3, "Опоздание", "Дисциплина")
	if err != nil {
		t.Fatal(err)
	}
	if newScore != 7 {
		t.Fatalf("после списания счёт %d, ожидали 7", newScore)
	}

	// отмена возвращает баллы и удаляет запись
	if err := db.UndoRecord(ctx, testDB, rec.ID); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetStudent(ctx, testDB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != -3 {
		t.Errorf("после отмены счёт %d, ожидали -3", got.Score)
	}
	if _, err := db.RecordsByStudent(ctx, testDB, s.ID, 10); err != nil {
		t.Fatal(err)
	}
	_, total, err := db.ListRecords(ctx, testDB, db.RecordFilter{StudentID: s.ID})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("в журнале %d записей, ожидали одну оставшуюся", total)
	}
}

func TestModifyScoreUnknownStudent(t *testing.T) {
	truncate(t)
	_, _, err := db.ModifyScore(context.Background(), testDB, 9999, 5, "x", "y")
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("неизвестный ученик: %v, ожидали ErrNotFound", err)
	}
}

func TestUndoUnknownRecord(t *testing.T) {
	truncate(t)
	if err := db.UndoRecord(context.Background(), testDB, 12345); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("неизвестная запись: %v, ожидали ErrNotFound", err)
	}
}

// Порядок таблицы лидеров: баллы по убыванию, при равенстве — номер по возрастанию.
func TestLeaderboardOrdering(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	a := mustStudent(t, "003", "Вера")
	b := mustStudent(t, "001", "Алиса")
	c := mustStudent(t, "002", "Борис")

	for _, m := range []struct {
		id    int64
		value int
	}{{a.ID, 50}, {b.ID, 50}, {c.ID, 80}} {
		if _, _, err := db.ModifyScore(ctx, testDB, m.id, m.value, "seed", ""); err != nil {
			t.Fatal(err)
		}
	}

	list, err := db.ListStudents(ctx, testDB)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range list {
		got = append(got, s.StudentNo)
	}
	want := []string{"002", "001", "003"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("порядок %v, ожидали %v", got, want)
	}
}

func TestBatchModifySkipsUnknown(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := mustStudent(t, "001", "Алиса")

	err := db.BatchModifyScore(ctx, testDB, []int64{s.ID, 9999}, 5, "Работа в группе", "Учёба")
	if err != nil {
		t.Fatalf("неизвестный id должен молча пропускаться: %v", err)
	}
	got, err := db.GetStudent(ctx, testDB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Score != 5 {
		t.Errorf("счёт %d, ожидали 5", got.Score)
	}
}

func TestResetAllScores(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	a := mustStudent(t, "001", "Алиса")
	b := mustStudent(t, "002", "Борис")
	for _, id := range []int64{a.ID, b.ID} {
		if _, _, err := db.ModifyScore(ctx, testDB, id, 42, "seed", ""); err != nil {
			t.Fatal(err)
		}
	}

	if err := db.ResetAllScores(ctx, testDB); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListStudents(ctx, testDB)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("учеников %d, сброс не должен их удалять", len(list))
	}
	for _, s := range list {
		if s.Score != 0 {
			t.Errorf("у %s счёт %d после сброса", s.StudentNo, s.Score)
		}
	}

	_, total, err := db.ListRecords(ctx, testDB, db.RecordFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("журнал не пуст после сброса: %d записей", total)
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := mustStudent(t, "001", "Алиса")
	if _, _, err := db.ModifyScore(ctx, testDB, s.ID, 5, "x", ""); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteStudent(ctx, testDB, s.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetStudent(ctx, testDB, s.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("ученик остался: %v", err)
	}
	_, total, err := db.ListRecords(ctx, testDB, db.RecordFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("записи удалённого ученика остались: %d", total)
	}

	if err := db.DeleteStudent(ctx, testDB, s.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("повторное удаление: %v, ожидали ErrNotFound", err)
	}
}

func TestSearchStudents(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	mustStudent(t, "001", "Алиса")
	mustStudent(t, "002", "Борис")

	got, err := db.SearchStudents(ctx, testDB, "01")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Алиса" {
		t.Errorf("поиск по номеру: %v", got)
	}

	got, err = db.SearchStudents(ctx, testDB, "Борис")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].StudentNo != "002" {
		t.Errorf("поиск по имени: %v", got)
	}
}

func TestListRecordsPagingAndFilter(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := mustStudent(t, "001", "Алиса")

	for i := 0; i < 5; i++ {
		category := "Учёба"
		if i%2 == 1 {
			category = "Дисциплина"
		}
		if _, _, err := db.ModifyScore(ctx, testDB, s.ID, 1, "x", category); err != nil {
			t.Fatal(err)
		}
	}

	page, total, err := db.ListRecords(ctx, testDB, db.RecordFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(page) != 2 {
		t.Errorf("total=%d, на странице %d; ожидали 5 и 2", total, len(page))
	}
	if page[0].Student == nil || page[0].Student.Name != "Алиса" {
		t.Error("в записи нет вложенного ученика")
	}

	_, total, err = db.ListRecords(ctx, testDB, db.RecordFilter{Category: "Дисциплина"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("по категории total=%d, ожидали 2", total)
	}
}

func TestStatistics(t *testing.T) {
	truncate(t)
	ctx := context.Background()
	s := mustStudent(t, "001", "Алиса")
	mustStudent(t, "002", "Борис")

	if _, _, err := db.ModifyScore(ctx, testDB, s.ID, 10, "x", "Учёба"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := db.ModifyScore(ctx, testDB, s.ID, -2, "y", "Дисциплина"); err != nil {
		t.Fatal(err)
	}

	st, err := db.GetStatistics(ctx, testDB)
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalStudents != 2 || st.TotalRecords != 2 {
		t.Errorf("итоги %d/%d, ожидали 2/2", st.TotalStudents, st.TotalRecords)
	}
	if len(st.CategoryStats) != 2 {
		t.Fatalf("категорий %d, ожидали 2", len(st.CategoryStats))
	}
	// категории идут по алфавиту
	if st.CategoryStats[0].Category != "Дисциплина" || st.CategoryStats[0].Total != -2 {
		t.Errorf("первая категория %+v", st.CategoryStats[0])
	}
}

func TestSeedIdempotent(t *testing.T) {
	truncate(t)
	ctx := context.Background()

	if err := db.Seed(ctx, testDB); err != nil {
		t.Fatal(err)
	}
	ranks1, err := db.ListRanksDesc(ctx, testDB)
	if err != nil {
		t.Fatal(err)
	}

	if err := db.Seed(ctx, testDB); err != nil {
		t.Fatal(err)
	}
	ranks2, err := db.ListRanksDesc(ctx, testDB)
	if err != nil {
		t.Fatal(err)
	}

	if len(ranks1) == 0 || len(ranks1) != len(ranks2) {
		t.Errorf("повторный посев изменил лестницу: %d -> %d", len(ranks1), len(ranks2))
	}
	// лестница по убыванию порога
	for i := 1; i < len(ranks2); i++ {
		if ranks2[i].MinScore > ranks2[i-1].MinScore {
			t.Fatalf("лестница не отсортирована по убыванию: %v", ranks2)
		}
	}
}
