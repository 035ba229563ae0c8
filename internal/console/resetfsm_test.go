package console

import (
	"context"
	"errors"
	"testing"
)

// fakeResetAPI управляется двумя ошибками-заглушками.
type fakeResetAPI struct {
	verifyErr error
	resetErr  error

	verifyCalls int
	resetCalls  int
	lastAdminPW string
}

func (f *fakeResetAPI) VerifyResetPassword(_ context.Context, _ string) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeResetAPI) ResetAllScores(_ context.Context, pw string) error {
	f.resetCalls++
	f.lastAdminPW = pw
	return f.resetErr
}

func TestResetFlowHappyPath(t *testing.T) {
	api := &fakeResetAPI{}
	f := NewResetFlow(api)
	ctx := context.Background()

	f.Open()
	if f.State() != ResetPassword {
		t.Fatalf("после Open состояние %d, ожидали ResetPassword", f.State())
	}
	if err := f.SubmitPassword(ctx, "reset-pw"); err != nil {
		t.Fatal(err)
	}
	if f.State() != ResetConfirm1 {
		t.Fatalf("после пароля состояние %d, ожидали ResetConfirm1", f.State())
	}
	if err := f.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if err := f.Confirm(ctx, "admin-pw"); err != nil {
		t.Fatal(err)
	}
	if f.State() != ResetClosed {
		t.Fatalf("после Confirm состояние %d, ожидали ResetClosed", f.State())
	}
	if api.lastAdminPW != "admin-pw" {
		t.Errorf("сброс вызван с паролем %q", api.lastAdminPW)
	}
}

// Перескочить шаг нельзя ни в одну сторону.
func TestResetFlowNoSkipping(t *testing.T) {
	api := &fakeResetAPI{}
	f := NewResetFlow(api)
	ctx := context.Background()

	if err := f.Confirm(ctx, "pw"); !errors.Is(err, ErrBadTransition) {
		t.Errorf("Confirm из закрытого диалога: %v, ожидали ErrBadTransition", err)
	}
	if err := f.Acknowledge(); !errors.Is(err, ErrBadTransition) {
		t.Errorf("Acknowledge из закрытого диалога: %v, ожидали ErrBadTransition", err)
	}

	f.Open()
	if err := f.Confirm(ctx, "pw"); !errors.Is(err, ErrBadTransition) {
		t.Errorf("Confirm минуя подтверждения: %v, ожидали ErrBadTransition", err)
	}
	if api.resetCalls != 0 {
		t.Errorf("сброс вызван %d раз без прохождения диалога", api.resetCalls)
	}
}

// Неверный пароль сброса оставляет диалог на том же шаге.
func TestResetFlowBadPasswordStays(t *testing.T) {
	api := &fakeResetAPI{verifyErr: errors.New("неверный пароль сброса")}
	f := NewResetFlow(api)

	f.Open()
	if err := f.SubmitPassword(context.Background(), "wrong"); err == nil {
		t.Fatal("ожидали ошибку проверки пароля")
	}
	if f.State() != ResetPassword {
		t.Errorf("состояние %d, диалог должен остаться на вводе пароля", f.State())
	}
	if f.LastErr() != "неверный пароль сброса" {
		t.Errorf("LastErr = %q", f.LastErr())
	}
}

// Ошибка самого сброса не закрывает диалог: он остаётся на финальном шаге.
func TestResetFlowFailureKeepsFinalStep(t *testing.T) {
	api := &fakeResetAPI{resetErr: errors.New("внутренняя ошибка сервера")}
	f := NewResetFlow(api)
	ctx := context.Background()

	f.Open()
	if err := f.SubmitPassword(ctx, "reset-pw"); err != nil {
		t.Fatal(err)
	}
	if err := f.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	if err := f.Confirm(ctx, "admin-pw"); err == nil {
		t.Fatal("ожидали ошибку сброса")
	}
	if f.State() != ResetConfirm2 {
		t.Errorf("состояние %d, ожидали ResetConfirm2", f.State())
	}

	// повторная попытка с того же шага
	api.resetErr = nil
	if err := f.Confirm(ctx, "admin-pw"); err != nil {
		t.Fatal(err)
	}
	if f.State() != ResetClosed {
		t.Errorf("после успешного повтора состояние %d, ожидали ResetClosed", f.State())
	}
}

func TestResetFlowCancelAnywhere(t *testing.T) {
	api := &fakeResetAPI{}
	f := NewResetFlow(api)

	f.Open()
	_ = f.SubmitPassword(context.Background(), "reset-pw")
	f.Cancel()
	if f.State() != ResetClosed || f.LastErr() != "" {
		t.Errorf("после Cancel: состояние %d, lastErr %q", f.State(), f.LastErr())
	}
}
