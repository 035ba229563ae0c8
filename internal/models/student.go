package models

import "time"

type Student struct {
	ID        int64     `json:"id" db:"id"`
	StudentNo string    `json:"student_no" db:"student_no"`
	Name      string    `json:"name" db:"name"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StudentWithRank — проекция для таблицы лидеров: ученик плюс вычисленные
// на сервере место и ранг. Пересчитывается при каждом запросе, в БД не хранится.
type StudentWithRank struct {
	Student
	Ranking       int    `json:"ranking"`
	RankName      string `json:"rank_name"`
	RankColor     string `json:"rank_color"`
	RankIcon      string `json:"rank_icon"`
	NextRank      string `json:"next_rank"`
	NextRankScore int    `json:"next_rank_score"`
}

// StudentDetail — ответ детальной страницы ученика.
type StudentDetail struct {
	Student       Student       `json:"student"`
	Records       []ScoreRecord `json:"records"`
	Ranking       int           `json:"ranking"`
	RankName      string        `json:"rank_name"`
	RankColor     string        `json:"rank_color"`
	RankIcon      string        `json:"rank_icon"`
	NextRank      string        `json:"next_rank"`
	NextRankScore int           `json:"next_rank_score"`
}
