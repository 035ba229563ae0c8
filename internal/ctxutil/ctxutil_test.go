package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestOpRoundTrip(t *testing.T) {
	ctx := WithOp(context.Background(), "modify_score")
	name, ok := Op(ctx)
	if !ok || name != "modify_score" {
		t.Errorf("Op = %q, %v", name, ok)
	}

	if _, ok := Op(context.Background()); ok {
		t.Error("пустой контекст не должен содержать имя операции")
	}
}

func TestWithDBTimeoutRespectsParentDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	ctx, c2 := WithDBTimeout(parent)
	defer c2()

	dl, ok := ctx.Deadline()
	if !ok {
		t.Fatal("дедлайн не выставлен")
	}
	// у родителя осталась секунда — дочерний дедлайн не может быть позже
	if time.Until(dl) > time.Second+50*time.Millisecond {
		t.Errorf("дочерний дедлайн дальше родительского: %v", time.Until(dl))
	}
}

func TestWithTimeoutNonPositive(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("при d<=0 дедлайна быть не должно")
	}
}
