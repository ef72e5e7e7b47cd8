// Package composer — транзиентное состояние формы ввода одного комментария.
//
// На каждый экземпляр формы (корневая форма секции и каждая открытая форма
// ответа) — свой Composer: буфер текста, флаг отправки и локальная ошибка.
package composer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/internal/store"
	"github.com/pribylovaa/go-comment-section/pkg/log"
)

var (
	// ErrEmptyContent — локальная валидация: пустой (после TrimSpace) текст.
	// До сети такой сабмит не доходит.
	ErrEmptyContent = errors.New("comment cannot be empty")
	// ErrSubmitInFlight — на экземпляр допускается ровно одна отправка
	// одновременно; повторный Submit при незавершённой отклоняется локально.
	ErrSubmitInFlight = errors.New("submit already in flight")
)

// Composer — состояние композера. Безопасен для конкурентного доступа:
// завершения запросов приходят из разных горутин.
type Composer struct {
	st       store.Store
	parentID string // "" — корневая форма

	mu         sync.Mutex
	content    string
	submitting bool
	lastErr    error
}

// New создаёт композер для формы с данным родителем
// (parentID == "" — форма верхнего уровня).
func New(st store.Store, parentID string) *Composer {
	return &Composer{st: st, parentID: parentID}
}

// SetContent заменяет буфер ввода.
func (c *Composer) SetContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = content
}

// Content возвращает текущий буфер ввода.
func (c *Composer) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

// Submitting сообщает, есть ли незавершённая отправка.
func (c *Composer) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Err возвращает последнюю ошибку формы (валидация или отказ стораджа);
// nil — ошибки нет.
func (c *Composer) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Cancel сбрасывает буфер и ошибку (закрытие формы ответа).
// Незавершённую отправку не прерывает: отмена in-flight запросов
// не поддерживается.
func (c *Composer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.content = ""
	c.lastErr = nil
}

// Submit — отправка содержимого буфера в хранилище.
//
// Поведение:
//   - пустой после TrimSpace текст -> ErrEmptyContent, сторадж не вызывается;
//   - незавершённая отправка -> ErrSubmitInFlight, сторадж не вызывается;
//   - успех -> буфер и ошибка очищаются, возвращается созданная запись
//     (вызывающая сторона сама решает, куда её положить и закрывать ли форму);
//   - отказ -> буфер сохраняется для повторной попытки без перенабора,
//     ошибка запоминается и возвращается.
func (c *Composer) Submit(ctx context.Context) (*models.Comment, error) {
	const op = "composer/Submit"

	lg := log.From(ctx).With("op", op, "parent_id", c.parentID)

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		lg.Warn("submit rejected: already in flight")
		return nil, fmt.Errorf("%s: %w", op, ErrSubmitInFlight)
	}

	content := strings.TrimSpace(c.content)
	if content == "" {
		c.lastErr = ErrEmptyContent
		c.mu.Unlock()
		lg.Warn("validation failed: empty content")
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyContent)
	}

	c.submitting = true
	c.lastErr = nil
	c.mu.Unlock()

	// Сетевая часть — вне мьютекса: пока отправка в полёте, форма остаётся
	// читаемой (Submitting/Content для UI).
	created, err := c.st.CreateComment(ctx, models.CommentInput{
		Content:  content,
		ParentID: c.parentID,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.lastErr = err
		lg.Error("store error on CreateComment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.content = ""
	c.lastErr = nil

	return created, nil
}
