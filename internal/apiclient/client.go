// Package apiclient — типизированный клиент REST API табло.
// Публичные методы ходят без авторизации; админские принимают пароль
// явным аргументом и прикладывают его заголовком к каждому запросу —
// никакого общего состояния с паролем внутри клиента.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// AdminHeader — тот же заголовок, что проверяет сервер.
const AdminHeader = "X-Admin-Password"

// genericFail — запасной текст, когда тело ошибки не разобрать.
const genericFail = "запрос не выполнен"

// APIError — ошибка уровня HTTP: статус и сообщение из поля error ответа.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type Client struct {
	baseURL string
	httpc   *http.Client
}

// DefaultBaseURL — адрес API; берётся из окружения, чтобы клиентские
// утилиты работали и с локальным, и с развёрнутым сервером.
func DefaultBaseURL() string {
	if v := os.Getenv("SCORE_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080/api"
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// таймаут обязателен: зависший бэкенд не должен вешать клиента навсегда
		httpc: &http.Client{Timeout: 15 * time.Second},
	}
}

// do выполняет запрос: JSON-тело, слияние заголовков (заголовки вызывающего
// приоритетнее), разбор ответа в out. Не-2xx превращается в *APIError с
// сообщением из поля error, либо с запасным текстом.
func (c *Client) do(ctx context.Context, method, path string, body any, hdr http.Header, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range hdr {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode, Message: genericFail}
		var eb struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			apiErr.Message = eb.Error
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// схему не валидируем: доверяем серверу, как и фронтенд
	return json.NewDecoder(resp.Body).Decode(out)
}

// doAdmin — то же, но с паролем администратора в заголовке.
func (c *Client) doAdmin(ctx context.Context, method, path, password string, body any, out any) error {
	hdr := http.Header{}
	hdr.Set(AdminHeader, password)
	return c.do(ctx, method, path, body, hdr, out)
}

// raw выполняет GET и возвращает тело как есть (для выгрузки xlsx).
func (c *Client) raw(ctx context.Context, path, password string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if password != "" {
		req.Header.Set(AdminHeader, password)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode, Message: genericFail}
		var eb struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
			apiErr.Message = eb.Error
		}
		return nil, apiErr
	}
	return io.ReadAll(resp.Body)
}
