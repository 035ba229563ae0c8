package export

import (
	"strings"
	"testing"
	"time"

	"github.com/DMH695/score/internal/models"
)

func TestColName(t *testing.T) {
	cases := map[int]string{1: "A", 2: "B", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA"}
	for n, want := range cases {
		if got := colName(n); got != want {
			t.Errorf("colName(%d) = %q, ожидали %q", n, got, want)
		}
	}
}

func TestLeaderboardWorkbookSheets(t *testing.T) {
	board := []models.StudentWithRank{
		{
			Student:  models.Student{StudentNo: "001", Name: "Алиса", Score: 120},
			Ranking:  1,
			RankName: "Золото",
			NextRank: "Платина",
		},
	}
	alice := board[0].Student
	records := []models.ScoreRecord{
		{Student: &alice, Value: 5, Reason: "Ответ у доски", Category: "Работа на уроке", CreatedAt: time.Now()},
	}

	wb, err := LeaderboardWorkbook(board, records)
	if err != nil {
		t.Fatal(err)
	}

	sheets := wb.File.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Рейтинг" || sheets[1] != "Журнал" {
		t.Fatalf("листы %v, ожидали Рейтинг и Журнал", sheets)
	}

	name, err := wb.File.GetCellValue("Рейтинг", "C2")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Алиса" {
		t.Errorf("в рейтинге C2 = %q", name)
	}

	reason, err := wb.File.GetCellValue("Журнал", "E2")
	if err != nil {
		t.Fatal(err)
	}
	if reason != "Ответ у доски" {
		t.Errorf("в журнале E2 = %q", reason)
	}
}

func TestEmptyWorkbook(t *testing.T) {
	wb, err := LeaderboardWorkbook(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	header, err := wb.File.GetCellValue("Рейтинг", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if header != "Место" {
		t.Errorf("шапка пустого листа: %q", header)
	}
}

func TestFileName(t *testing.T) {
	name := FileName()
	if !strings.HasPrefix(name, "scoreboard_") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("имя файла %q", name)
	}
}
