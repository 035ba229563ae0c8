package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/DMH695/score/internal/models"
	"github.com/xuri/excelize/v2"
)

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

type Workbook struct {
	File *excelize.File
}

// NewWorkbook собирает xlsx из готовых листов: жирная шапка, автофильтр,
// эвристическая ширина колонок.
func NewWorkbook(sheets []SheetSpec) (*Workbook, error) {
	f := excelize.NewFile()

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			// переименовываем стандартный Sheet1 вместо удаления
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}
		for col, h := range s.Header {
			cell := fmt.Sprintf("%s1", colName(col+1))
			if err := f.SetCellStr(name, cell, h); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := colName(len(s.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range s.Rows {
			for c, val := range row {
				cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
				if err := f.SetCellStr(name, cell, val); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}
		// ширина: по заголовку и первым строкам
		for c := 1; c <= len(s.Header); c++ {
			maxim := len([]rune(s.Header[c-1]))
			for r := 0; r < minim(50, len(s.Rows)); r++ {
				if l := len([]rune(s.Rows[r][c-1])); l > maxim {
					maxim = l
				}
			}
			w := float64(maxim) * 0.9
			if w < 12 {
				w = 12
			}
			if w > 40 {
				w = 40
			}
			_ = f.SetColWidth(name, colName(c), colName(c), w)
		}
	}
	return &Workbook{File: f}, nil
}

// LeaderboardWorkbook — два листа: текущая таблица лидеров и полный журнал.
func LeaderboardWorkbook(board []models.StudentWithRank, records []models.ScoreRecord) (*Workbook, error) {
	boardRows := make([][]string, 0, len(board))
	for _, s := range board {
		boardRows = append(boardRows, []string{
			strconv.Itoa(s.Ranking),
			s.StudentNo,
			s.Name,
			strconv.Itoa(s.Score),
			s.RankName,
			s.NextRank,
			strconv.Itoa(s.NextRankScore),
		})
	}

	recordRows := make([][]string, 0, len(records))
	for _, r := range records {
		name := ""
		if r.Student != nil {
			name = r.Student.Name
		}
		recordRows = append(recordRows, []string{
			r.CreatedAt.Format("02.01.2006 15:04"),
			name,
			strconv.Itoa(r.Value),
			r.Category,
			r.Reason,
		})
	}

	return NewWorkbook([]SheetSpec{
		{
			Title:  "Рейтинг",
			Header: []string{"Место", "Номер", "Имя", "Баллы", "Ранг", "Следующий ранг", "До следующего"},
			Rows:   boardRows,
		},
		{
			Title:  "Журнал",
			Header: []string{"Дата", "Ученик", "Баллы", "Категория", "Причина"},
			Rows:   recordRows,
		},
	})
}

func FileName() string {
	return fmt.Sprintf("scoreboard_%s.xlsx", time.Now().Format("2006-01-02"))
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
