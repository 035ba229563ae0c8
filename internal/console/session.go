package console

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// Verifier — та часть API-клиента, что нужна сессии.
type Verifier interface {
	Login(ctx context.Context, password string) error
}

// CredentialStore хранит пароль администратора между запусками —
// один файл в домашнем каталоге, аналог localStorage в браузерной версии.
type CredentialStore struct {
	Path string
}

func DefaultCredentialStore() CredentialStore {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return CredentialStore{Path: filepath.Join(home, ".scorectl_password")}
}

func (s CredentialStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s CredentialStore) Save(password string) error {
	return os.WriteFile(s.Path, []byte(password+"\n"), 0o600)
}

func (s CredentialStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Session — вход в админку. Пароль живёт в памяти до логаута; сохранённый
// пароль при старте перепроверяется на сервере и при отказе выбрасывается.
type Session struct {
	api      Verifier
	store    CredentialStore
	password string
}

func NewSession(api Verifier, store CredentialStore) *Session {
	return &Session{api: api, store: store}
}

// Restore пытается открыть сессию по сохранённому паролю. Возвращает true,
// если вход удался. Отвергнутый сервером пароль удаляется из хранилища —
// второй раз предлагать его бессмысленно.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	saved, err := s.store.Load()
	if err != nil || saved == "" {
		return false, nil
	}
	if err := s.api.Login(ctx, saved); err != nil {
		_ = s.store.Clear()
		s.password = ""
		return false, err
	}
	s.password = saved
	return true, nil
}

// Login проверяет пароль на сервере и при успехе запоминает его
// в памяти и на диске.
func (s *Session) Login(ctx context.Context, password string) error {
	if err := s.api.Login(ctx, password); err != nil {
		return err
	}
	s.password = password
	return s.store.Save(password)
}

// Logout забывает пароль в памяти и на диске.
func (s *Session) Logout() {
	s.password = ""
	_ = s.store.Clear()
}

func (s *Session) LoggedIn() bool { return s.password != "" }

// Password — текущий пароль для передачи в админские вызовы.
func (s *Session) Password() string { return s.password }
