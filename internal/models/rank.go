package models

// Rank — ступень рейтинговой лестницы. Лестница полностью упорядочена по
// MinScore; ученик находится на самой высокой ступени, порог которой он достиг.
type Rank struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	MinScore  int    `json:"min_score" db:"min_score"`
	Color     string `json:"color" db:"color"`
	Icon      string `json:"icon" db:"icon"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

// RankFor возвращает текущую ступень для score: самую высокую с
// min_score <= score. ranks должны быть отсортированы по min_score по убыванию.
// Если score ниже самого низкого порога — nil.
func RankFor(ranks []Rank, score int) *Rank {
	for i := range ranks {
		if score >= ranks[i].MinScore {
			return &ranks[i]
		}
	}
	return nil
}

// NextRankFor возвращает ближайшую недостигнутую ступень (минимальный
// min_score > score) и сколько баллов до неё не хватает. ranks — по убыванию
// min_score. Если ученик уже на вершине — nil, 0.
func NextRankFor(ranks []Rank, score int) (*Rank, int) {
	for j := len(ranks) - 1; j >= 0; j-- {
		if ranks[j].MinScore > score {
			return &ranks[j], ranks[j].MinScore - score
		}
	}
	return nil, 0
}
