package console

import (
	"strings"
	"testing"

	"github.com/DMH695/score/internal/models"
)

func board(pairs ...[2]string) []models.StudentWithRank {
	out := make([]models.StudentWithRank, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.StudentWithRank{
			Student: models.Student{StudentNo: p[0], Name: p[1]},
		})
	}
	return out
}

func TestFilterStudents(t *testing.T) {
	list := board([2]string{"001", "Алиса"}, [2]string{"002", "Борис"})

	got := FilterStudents(list, "01")
	if len(got) != 1 || got[0].Name != "Алиса" {
		t.Fatalf("фильтр по номеру: %v, ожидали только Алису", got)
	}

	got = FilterStudents(list, "бори")
	if len(got) != 1 || got[0].Name != "Борис" {
		t.Fatalf("фильтр по имени без учёта регистра: %v", got)
	}

	if got := FilterStudents(list, ""); len(got) != 2 {
		t.Fatalf("пустой фильтр должен вернуть всех, получили %d", len(got))
	}

	if got := FilterStudents(list, "нет такого"); len(got) != 0 {
		t.Fatalf("несовпадающий фильтр: %v", got)
	}
}

func TestPodiumSplit(t *testing.T) {
	list := board(
		[2]string{"1", "а"}, [2]string{"2", "б"}, [2]string{"3", "в"},
		[2]string{"4", "г"}, [2]string{"5", "д"},
	)

	top, rest := Podium(list)
	if len(top) != 3 || len(rest) != 2 {
		t.Fatalf("разбиение %d/%d, ожидали 3/2", len(top), len(rest))
	}
	// без пересечений и пропусков
	if top[2].StudentNo != "3" || rest[0].StudentNo != "4" {
		t.Errorf("граница пьедестала: %s | %s", top[2].StudentNo, rest[0].StudentNo)
	}

	short := list[:2]
	top, rest = Podium(short)
	if len(top) != 2 || rest != nil {
		t.Errorf("короткий список: %d/%v, ожидали всех на пьедестале", len(top), rest)
	}
}

func TestTotals(t *testing.T) {
	list := board([2]string{"1", "а"}, [2]string{"2", "б"}, [2]string{"3", "в"})
	list[0].Score, list[1].Score, list[2].Score = 80, 90, 100

	total, avg := Totals(list)
	if total != 270 || avg != 90 {
		t.Errorf("Totals = %d/%.1f, ожидали 270/90.0", total, avg)
	}

	total, avg = Totals(nil)
	if total != 0 || avg != 0 {
		t.Errorf("пустой список: %d/%.1f, деления на ноль быть не должно", total, avg)
	}
}

func TestFormatBoard(t *testing.T) {
	list := board([2]string{"001", "Алиса"}, [2]string{"002", "Борис"})
	list[0].Score, list[0].Ranking = 120, 1
	list[1].Score, list[1].Ranking = 80, 2

	out := FormatBoard(list)
	if !strings.Contains(out, "Алиса") || !strings.Contains(out, "Борис") {
		t.Errorf("в таблице нет учеников:\n%s", out)
	}
	if !strings.Contains(out, "сумма баллов: 200") {
		t.Errorf("итоговая строка не совпала:\n%s", out)
	}
}

func TestFormatDetailNextRank(t *testing.T) {
	d := models.StudentDetail{}
	d.Student = models.Student{Name: "Алиса", StudentNo: "001", Score: 60}
	d.Ranking = 2
	d.RankName = "Серебро"
	d.NextRank = "Золото"
	d.NextRankScore = 40

	out := FormatDetail(d)
	if !strings.Contains(out, "«Золото» осталось 40") {
		t.Errorf("нет строки о следующем ранге:\n%s", out)
	}

	d.NextRank = ""
	if strings.Contains(FormatDetail(d), "осталось") {
		t.Error("на вершине лестницы строка о следующем ранге не нужна")
	}
}
