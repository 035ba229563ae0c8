package console

import (
	"fmt"
	"strings"

	"github.com/DMH695/score/internal/models"
)

// FilterStudents — подстрочный фильтр по имени или номеру, как строка
// поиска на публичной странице.
func FilterStudents(list []models.StudentWithRank, keyword string) []models.StudentWithRank {
	if keyword == "" {
		return list
	}
	kw := strings.ToLower(keyword)
	var out []models.StudentWithRank
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Name), kw) ||
			strings.Contains(strings.ToLower(s.StudentNo), kw) {
			out = append(out, s)
		}
	}
	return out
}

// Podium делит отсортированный рейтинг на пьедестал (первые три) и
// остальных — без пересечений и пропусков.
func Podium(list []models.StudentWithRank) (top []models.StudentWithRank, rest []models.StudentWithRank) {
	if len(list) <= 3 {
		return list, nil
	}
	return list[:3], list[3:]
}

// Totals — сумма и средний балл; публичная страница считает их на клиенте
// из уже загруженного списка.
func Totals(list []models.StudentWithRank) (total int, average float64) {
	if len(list) == 0 {
		return 0, 0
	}
	for _, s := range list {
		total += s.Score
	}
	return total, float64(total) / float64(len(list))
}

// FormatBoard — текстовая таблица лидеров для терминала.
func FormatBoard(list []models.StudentWithRank) string {
	var b strings.Builder
	top, rest := Podium(list)
	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range top {
		medal := ""
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(&b, "%s %2d. %-4s %-20s %5d %s %s\n",
			medal, s.Ranking, s.StudentNo, s.Name, s.Score, s.RankIcon, s.RankName)
	}
	for _, s := range rest {
		fmt.Fprintf(&b, "   %2d. %-4s %-20s %5d %s %s\n",
			s.Ranking, s.StudentNo, s.Name, s.Score, s.RankIcon, s.RankName)
	}
	total, avg := Totals(list)
	fmt.Fprintf(&b, "Всего учеников: %d, сумма баллов: %d, средний: %.1f\n", len(list), total, avg)
	return b.String()
}

// FormatDetail — карточка ученика с историей.
func FormatDetail(d models.StudentDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (№%s)\n", d.RankIcon, d.Student.Name, d.Student.StudentNo)
	fmt.Fprintf(&b, "Баллы: %d, место: %d, ранг: %s\n", d.Student.Score, d.Ranking, d.RankName)
	if d.NextRank != "" {
		fmt.Fprintf(&b, "До ранга «%s» осталось %d баллов\n", d.NextRank, d.NextRankScore)
	}
	if len(d.Records) > 0 {
		b.WriteString("Последние операции:\n")
		for _, r := range d.Records {
			fmt.Fprintf(&b, "  %s  %+d  %s (%s)\n",
				r.CreatedAt.Format("02.01 15:04"), r.Value, r.Reason, r.Category)
		}
	}
	return b.String()
}
