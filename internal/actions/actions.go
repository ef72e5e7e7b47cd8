// Package actions — контроллер действий над одним существующим комментарием:
// ответ, редактирование, удаление, лайк.
//
// На каждый отображаемый комментарий — свой Controller с независимым
// транзиентным состоянием (открыта ли форма ответа, буфер редактирования,
// in-flight флаги). Контроллеры разных комментариев работают одновременно
// и не координируются: каждый патчит коллекцию секции только по своему id.
package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pribylovaa/go-comment-section/internal/composer"
	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/internal/section"
	"github.com/pribylovaa/go-comment-section/internal/store"
	"github.com/pribylovaa/go-comment-section/pkg/log"
)

var (
	// ErrDeleteInFlight — удаление уже запущено и ещё не завершилось.
	ErrDeleteInFlight = errors.New("delete already in flight")
	// ErrLikeInFlight — лайк уже запущен и ещё не завершился.
	ErrLikeInFlight = errors.New("like already in flight")
	// ErrNotEditing — SubmitEdit/CancelEdit вне режима редактирования.
	ErrNotEditing = errors.New("not in edit mode")
	// ErrNotReplying — Reply при закрытой форме ответа.
	ErrNotReplying = errors.New("reply form is not open")
	// ErrCommentGone — записи больше нет в коллекции
	// (её поддерево удалили, пока действие готовилось).
	ErrCommentGone = errors.New("comment no longer in collection")
)

// Controller — состояние и действия одного комментария.
//
// Ошибка каждого неуспешного действия локальна: она показывается рядом с
// этим комментарием (Err), остальной виджет продолжает работать. Повторов,
// бэкоффа и отмены in-flight запросов нет — пользователь перезапускает
// действие вручную.
type Controller struct {
	st        store.Store
	section   *section.Section
	commentID string

	mu       sync.Mutex
	reply    *composer.Composer // nil — форма ответа закрыта
	editing  bool
	editBuf  string
	deleting bool
	liking   bool
	lastErr  error
}

// New создаёт контроллер действий для комментария с данным id.
func New(st store.Store, s *section.Section, commentID string) *Controller {
	return &Controller{st: st, section: s, commentID: commentID}
}

// Err — последняя ошибка действия этого комментария (nil — ошибки нет).
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Replying сообщает, открыта ли форма ответа.
func (c *Controller) Replying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reply != nil
}

// Editing сообщает, активен ли режим редактирования.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing
}

// Deleting сообщает, есть ли незавершённое удаление.
func (c *Controller) Deleting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleting
}

// Liking сообщает, есть ли незавершённый лайк.
func (c *Controller) Liking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liking
}

// --- Ответ -----------------------------------------------------------------

// OpenReply открывает форму ответа (у формы свой композер со своим буфером
// и своим одиночным in-flight сабмитом). Повторный вызов — noop.
func (c *Controller) OpenReply() *composer.Composer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reply == nil {
		c.reply = composer.New(c.st, c.commentID)
	}

	return c.reply
}

// CloseReply закрывает форму ответа и сбрасывает её буфер.
func (c *Controller) CloseReply() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reply != nil {
		c.reply.Cancel()
		c.reply = nil
	}
}

// ReplyComposer возвращает композер открытой формы ответа (nil — закрыта).
func (c *Controller) ReplyComposer() *composer.Composer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reply
}

// Reply — сабмит открытой формы ответа.
// Успех: созданная запись добавляется в конец коллекции, форма закрывается.
// Отказ: ошибка остаётся на форме (composer.Err), форма открыта, буфер цел.
func (c *Controller) Reply(ctx context.Context) (*models.Comment, error) {
	const op = "actions/Reply"

	lg := log.From(ctx).With("op", op, "comment_id", c.commentID)

	c.mu.Lock()
	reply := c.reply
	c.mu.Unlock()

	if reply == nil {
		lg.Warn("reply form is not open")
		return nil, fmt.Errorf("%s: %w", op, ErrNotReplying)
	}

	created, err := reply.Submit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.section.Append(*created)
	c.CloseReply()

	return created, nil
}

// --- Редактирование --------------------------------------------------------

// BeginEdit входит в режим редактирования, копируя текущий контент записи
// в редактируемый буфер. Повторный вызов в активном режиме — noop
// (буфер не затирается).
func (c *Controller) BeginEdit() error {
	const op = "actions/BeginEdit"

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editing {
		return nil
	}

	current, ok := c.section.CommentByID(c.commentID)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrCommentGone)
	}

	c.editing = true
	c.editBuf = current.Content
	c.lastErr = nil

	return nil
}

// SetEditContent заменяет буфер редактирования.
func (c *Controller) SetEditContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editBuf = content
}

// EditContent возвращает буфер редактирования.
func (c *Controller) EditContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editBuf
}

// CancelEdit сбрасывает буфер и выходит из режима редактирования
// без обращения к хранилищу.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = false
	c.editBuf = ""
	c.lastErr = nil
}

// SubmitEdit отправляет отредактированный контент.
// Успех: запись в коллекции заменяется серверной версией целиком,
// режим редактирования выключается.
// Отказ: ошибка запоминается, режим редактирования и буфер сохраняются.
func (c *Controller) SubmitEdit(ctx context.Context) (*models.Comment, error) {
	const op = "actions/SubmitEdit"

	lg := log.From(ctx).With("op", op, "comment_id", c.commentID)

	c.mu.Lock()
	if !c.editing {
		c.mu.Unlock()
		lg.Warn("submit edit outside of edit mode")
		return nil, fmt.Errorf("%s: %w", op, ErrNotEditing)
	}
	content := c.editBuf
	c.lastErr = nil
	c.mu.Unlock()

	updated, err := c.st.UpdateComment(ctx, c.commentID, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastErr = err
		lg.Error("store error on UpdateComment", "err", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.section.ReplaceByID(*updated)
	c.editing = false
	c.editBuf = ""

	return updated, nil
}

// --- Удаление --------------------------------------------------------------

// Delete удаляет комментарий в хранилище и, при успехе, локально убирает
// из коллекции его вместе со всем поддеревом ответов.
// Отказ: ошибка запоминается, флаг deleting снимается, действия снова доступны.
func (c *Controller) Delete(ctx context.Context) error {
	const op = "actions/Delete"

	lg := log.From(ctx).With("op", op, "comment_id", c.commentID)

	c.mu.Lock()
	if c.deleting {
		c.mu.Unlock()
		lg.Warn("delete rejected: already in flight")
		return fmt.Errorf("%s: %w", op, ErrDeleteInFlight)
	}
	c.deleting = true
	c.lastErr = nil
	c.mu.Unlock()

	err := c.st.DeleteComment(ctx, c.commentID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.deleting = false
		c.lastErr = err
		lg.Error("store error on DeleteComment", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	c.section.RemoveSubtree(c.commentID)
	c.deleting = false

	return nil
}

// --- Лайк ------------------------------------------------------------------

// Like отправляет в хранилище новое значение счётчика: текущее+1, посчитанное
// на клиенте. Гонка двух одновременных инкрементов одного комментария из
// разных клиентов принимается как есть: арбитр финального значения — сервер,
// контрольной перечитки записи нет. При успехе локально патчится только
// поле Likes; при отказе счётчик не меняется.
func (c *Controller) Like(ctx context.Context) error {
	const op = "actions/Like"

	lg := log.From(ctx).With("op", op, "comment_id", c.commentID)

	c.mu.Lock()
	if c.liking {
		c.mu.Unlock()
		lg.Warn("like rejected: already in flight")
		return fmt.Errorf("%s: %w", op, ErrLikeInFlight)
	}
	c.liking = true
	c.lastErr = nil
	c.mu.Unlock()

	finish := func(err error) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.liking = false
		if err != nil {
			c.lastErr = err
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	current, ok := c.section.CommentByID(c.commentID)
	if !ok {
		lg.Warn("comment no longer in collection")
		return finish(ErrCommentGone)
	}

	likes := current.Likes + 1
	if err := c.st.UpdateLikes(ctx, c.commentID, likes); err != nil {
		lg.Error("store error on UpdateLikes", "err", err)
		return finish(err)
	}

	c.section.SetLikes(c.commentID, likes)

	return finish(nil)
}

// Удобный маппинг для UI: текст, который показывается рядом с действием.
// Сообщение сервера (поле message тела ошибки) имеет приоритет.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var se *store.StatusError
	if errors.As(err, &se) {
		return se.Error()
	}

	switch {
	case errors.Is(err, composer.ErrEmptyContent):
		return composer.ErrEmptyContent.Error()
	case errors.Is(err, store.ErrUnavailable):
		return "store unavailable"
	default:
		return err.Error()
	}
}
