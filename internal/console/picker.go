package console

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/DMH695/score/internal/models"
)

var ErrEmptyRoster = errors.New("список учеников пуст")

// Picker — «рулетка» случайного ученика: на каждом тике показывается
// случайное имя, после 20–29 тиков делается финальная независимая выборка.
// Никаких весов и исключения повторов — чистый rand.
type Picker struct {
	rnd *rand.Rand
}

func NewPicker(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// Run крутит анимацию и возвращает результат. Тикер освобождается всегда:
// и после последнего тика, и при отмене контекста на середине анимации.
func (p *Picker) Run(ctx context.Context, roster []models.StudentWithRank, tick time.Duration, onTick func(models.StudentWithRank)) (models.StudentWithRank, error) {
	if len(roster) == 0 {
		return models.StudentWithRank{}, ErrEmptyRoster
	}

	spins := 20 + p.rnd.Intn(10)
	t := time.NewTicker(tick)
	defer t.Stop()

	for i := 0; i < spins; i++ {
		select {
		case <-ctx.Done():
			return models.StudentWithRank{}, ctx.Err()
		case <-t.C:
			if onTick != nil {
				onTick(roster[p.rnd.Intn(len(roster))])
			}
		}
	}
	return roster[p.rnd.Intn(len(roster))], nil
}
