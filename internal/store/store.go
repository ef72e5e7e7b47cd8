// Package store описывает контракт удалённого хранилища комментариев.
//
// Само хранилище — внешний коллаборатор (REST-сервис); здесь только
// интерфейс, которым пользуются композер/контроллер/оркестратор,
// и ошибки его уровня.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-comment-section/internal/models"
)

var (
	// ErrNotFound — комментарий отсутствует в хранилище (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — хранилище отклонило входные данные (HTTP 400).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable — транспортный сбой: запрос не дошёл до хранилища.
	ErrUnavailable = errors.New("store unavailable")
)

// StatusError — отказ хранилища: запрос выполнился, но ответ не-2xx.
// Message — текст из поля "message" тела ошибки, если сервер его прислал;
// иначе генерируется общий текст по коду. Именно Message показывается
// пользователю рядом с действием, которое не удалось.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Is позволяет матчить типовые коды через errors.Is с сентинелами пакета.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == 404
	case ErrInvalidArgument:
		return e.Status == 400
	}

	return false
}

// Store описывает пять операций удалённого хранилища комментариев.
type Store interface {
	// ListComments возвращает полную плоскую коллекцию комментариев.
	ListComments(ctx context.Context) ([]models.Comment, error)

	// CreateComment создаёт корневой комментарий (ParentID == "")
	// или ответ и возвращает полную запись с серверными полями
	// (ID, User, CreatedAt, ...).
	CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)

	// UpdateComment заменяет контент комментария и возвращает
	// обновлённую запись целиком.
	// Если запись не найдена — ErrNotFound.
	UpdateComment(ctx context.Context, id string, content string) (*models.Comment, error)

	// UpdateLikes выставляет новое значение счётчика лайков.
	// Тело ответа не требуется: клиент патчит значение локально.
	UpdateLikes(ctx context.Context, id string, likes int64) error

	// DeleteComment удаляет комментарий по идентификатору.
	// Если запись не найдена — ErrNotFound.
	DeleteComment(ctx context.Context, id string) error
}
