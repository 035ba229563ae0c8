package console

import (
	"context"
	"errors"
)

// ResetState — шаг диалога полного сброса баллов.
type ResetState int

const (
	ResetClosed   ResetState = iota
	ResetPassword            // ждём отдельный пароль сброса
	ResetConfirm1            // предупреждение прочитано?
	ResetConfirm2            // последнее слово перед необратимым действием
)

// ErrBadTransition — попытка перескочить шаг диалога.
var ErrBadTransition = errors.New("недопустимый переход в диалоге сброса")

// ResetAPI — админские вызовы, которые нужны диалогу.
type ResetAPI interface {
	VerifyResetPassword(ctx context.Context, password string) error
	ResetAllScores(ctx context.Context, adminPassword string) error
}

// ResetFlow — трёхшаговый диалог, защищающий от случайного уничтожения
// всей истории баллов: пароль сброса → предупреждение → финальное
// подтверждение. Перескочить шаг нельзя; продвижение с шага пароля
// возможно только после подтверждения пароля сервером.
type ResetFlow struct {
	api     ResetAPI
	state   ResetState
	lastErr string
}

func NewResetFlow(api ResetAPI) *ResetFlow {
	return &ResetFlow{api: api}
}

func (f *ResetFlow) State() ResetState { return f.state }

// LastErr — текст последней ошибки для показа в диалоге.
func (f *ResetFlow) LastErr() string { return f.lastErr }

// Open открывает диалог с чистого листа.
func (f *ResetFlow) Open() {
	f.state = ResetPassword
	f.lastErr = ""
}

// Cancel закрывает диалог из любого состояния и стирает все поля.
func (f *ResetFlow) Cancel() {
	f.state = ResetClosed
	f.lastErr = ""
}

// SubmitPassword проверяет пароль сброса на сервере. Успех двигает диалог
// к первому подтверждению; отказ оставляет на месте и сохраняет текст ошибки.
func (f *ResetFlow) SubmitPassword(ctx context.Context, resetPassword string) error {
	if f.state != ResetPassword {
		return ErrBadTransition
	}
	if err := f.api.VerifyResetPassword(ctx, resetPassword); err != nil {
		f.lastErr = err.Error()
		return err
	}
	f.state = ResetConfirm1
	f.lastErr = ""
	return nil
}

// Acknowledge — подтверждение предупреждения; дополнительных проверок нет.
func (f *ResetFlow) Acknowledge() error {
	if f.state != ResetConfirm1 {
		return ErrBadTransition
	}
	f.state = ResetConfirm2
	return nil
}

// Confirm выполняет сам сброс. Успех закрывает диалог; ошибка оставляет
// его открытым на финальном шаге — молча закрываться при неудаче нельзя.
func (f *ResetFlow) Confirm(ctx context.Context, adminPassword string) error {
	if f.state != ResetConfirm2 {
		return ErrBadTransition
	}
	if err := f.api.ResetAllScores(ctx, adminPassword); err != nil {
		f.lastErr = err.Error()
		return err
	}
	f.state = ResetClosed
	f.lastErr = ""
	return nil
}
