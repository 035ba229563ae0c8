package models

import "time"

// ScoreRecord — запись о начислении/списании баллов. Неизменяема после
// создания; единственный способ "исправить" — отменить (удалить) запись,
// при этом баллы ученика возвращаются к прежнему значению.
type ScoreRecord struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"student_id" db:"student_id"`
	Student   *Student  `json:"student,omitempty"`
	Value     int       `json:"value" db:"value"`
	Reason    string    `json:"reason" db:"reason"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ScoreTemplate — готовый шаблон начисления: подпись, знакопеременное
// значение и категория. Применяется к ученику одним действием.
type ScoreTemplate struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Value    int    `json:"value" db:"value"`
	Category string `json:"category" db:"category"`
}

type CategoryStat struct {
	Category string `json:"category" db:"category"`
	Count    int64  `json:"count" db:"count"`
	Total    int64  `json:"total" db:"total"`
}

type Statistics struct {
	TotalStudents int64          `json:"total_students"`
	TotalRecords  int64          `json:"total_records"`
	CategoryStats []CategoryStat `json:"category_stats"`
}
