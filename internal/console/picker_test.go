package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DMH695/score/internal/models"
)

func TestPickerWinnerFromRoster(t *testing.T) {
	roster := board([2]string{"001", "Алиса"}, [2]string{"002", "Борис"}, [2]string{"003", "Вера"})

	var ticks int
	p := NewPicker(42)
	winner, err := p.Run(context.Background(), roster, time.Microsecond, func(models.StudentWithRank) {
		ticks++
	})
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, s := range roster {
		if s.StudentNo == winner.StudentNo {
			found = true
		}
	}
	if !found {
		t.Errorf("победитель %q не из списка", winner.StudentNo)
	}
	if ticks < 20 || ticks > 29 {
		t.Errorf("тиков %d, ожидали от 20 до 29", ticks)
	}
}

func TestPickerEmptyRoster(t *testing.T) {
	p := NewPicker(1)
	_, err := p.Run(context.Background(), nil, time.Microsecond, nil)
	if !errors.Is(err, ErrEmptyRoster) {
		t.Errorf("пустой список: %v, ожидали ErrEmptyRoster", err)
	}
}

// Отмена контекста прерывает анимацию, тикер освобождается внутри Run.
func TestPickerCancelled(t *testing.T) {
	roster := board([2]string{"001", "Алиса"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPicker(1)
	_, err := p.Run(ctx, roster, time.Hour, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("отменённый контекст: %v, ожидали context.Canceled", err)
	}
}

func TestPickerDeterministicSeed(t *testing.T) {
	roster := board([2]string{"001", "Алиса"}, [2]string{"002", "Борис"}, [2]string{"003", "Вера"})

	run := func() string {
		w, err := NewPicker(7).Run(context.Background(), roster, time.Microsecond, nil)
		if err != nil {
			t.Fatal(err)
		}
		return w.StudentNo
	}
	if run() != run() {
		t.Error("одинаковое зерно должно давать одинаковый результат")
	}
}
