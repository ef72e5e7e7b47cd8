// Package httpapi — HTTP-адаптер удалённого хранилища комментариев
// (реализация store.Store поверх REST/JSON контракта).
//
// Транспортная политика (и только она): Content-Type application/json,
// X-Request-Id на каждый запрос, опциональный Bearer-токен для деплоев
// с сессионной аутентификацией. Повторов, бэкоффа и таймаутов сверх
// общего клиентского нет: неуспех всплывает один раз, повторяет пользователь.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-comment-section/internal/config"
	"github.com/pribylovaa/go-comment-section/internal/store"
	"github.com/pribylovaa/go-comment-section/pkg/log"
)

// Client — HTTP-клиент хранилища комментариев.
type Client struct {
	baseURL   string
	userAgent string
	authToken string
	httpc     *http.Client
}

// New создаёт клиент по настройкам из конфигурации.
// cfg.API.BaseURL — корень API (например, http://localhost:8080/api),
// хвостовой слэш нормализуется.
func New(cfg config.Config) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		userAgent: cfg.API.UserAgent,
		authToken: cfg.API.AuthToken,
		httpc: &http.Client{
			Timeout: cfg.Timeouts.Service,
		},
	}
}

// do — единая точка исходящих запросов: заголовки, метрики, логирование,
// маппинг неуспехов. body == nil — запрос без тела; out == nil — тело ответа
// не требуется (успешный статус достаточен).
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}

	rid := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", rid)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	lg := log.From(ctx).With(
		"op", op,
		"method", method,
		"path", path,
		"request_id", rid,
	)

	resp, err := c.httpc.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(op, "transport_error").Inc()
		lg.Error("transport failure", "err", err)
		return fmt.Errorf("%s: %w: %v", op, store.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	dur := time.Since(start)
	requestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	requestDuration.WithLabelValues(op).Observe(dur.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := statusError(resp)
		lg.Warn("http", "status", resp.StatusCode, "dur", dur, "message", serr.Message)
		return fmt.Errorf("%s: %w", op, serr)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			lg.Error("decode response", "err", err)
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}

	lg.Info("http", "status", resp.StatusCode, "dur", dur)

	return nil
}

// statusError строит отказ из не-2xx ответа: текст берётся из поля "message"
// JSON-тела, если сервер его прислал; иначе — общий текст по коду
// ("request failed with status N" через StatusError.Error).
func statusError(resp *http.Response) *store.StatusError {
	serr := &store.StatusError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		serr.Message = body.Message
	}

	return serr
}
