// Package section — оркестратор секции комментариев: владелец единственной
// авторитетной плоской коллекции.
//
// Коллекция загружается один раз на маунт и дальше правится локальными
// патчами (prepend/append/replace/remove-subtree) после успешных записей в
// удалённое хранилище — без повторной полной загрузки. Отдельных копий ветки
// ни у кого нет: дочерние компоненты держат ссылку на Section и читают
// снапшот через Comments().
package section

import (
	"context"
	"fmt"
	"sync"

	"github.com/pribylovaa/go-comment-section/internal/composer"
	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/internal/store"
	"github.com/pribylovaa/go-comment-section/internal/tree"
	"github.com/pribylovaa/go-comment-section/pkg/log"
)

// State — состояние начальной загрузки секции.
type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Section — владелец коллекции и корневого композера.
//
// Мьютекс защищает коллекцию от одновременных патчей: независимые
// in-flight операции разных контроллеров завершаются в разных горутинах,
// а их патчи коммутативны (replace-by-id, append, remove-subtree), поэтому
// порядок применения не важен.
type Section struct {
	st   store.Store
	root *composer.Composer

	mu       sync.Mutex
	comments []models.Comment
	state    State
	loadErr  error
}

// New создаёт секцию в состоянии loading с пустой коллекцией.
func New(st store.Store) *Section {
	return &Section{
		st:    st,
		root:  composer.New(st, ""),
		state: StateLoading,
	}
}

// Composer возвращает корневую форму ввода секции.
func (s *Section) Composer() *composer.Composer {
	return s.root
}

// Load — одноразовая начальная загрузка полной коллекции:
// loading -> ready либо loading -> failed. Пагинации, дозагрузки и фонового
// обновления нет; повторная полная загрузка возможна только новым маунтом
// (повторным вызовом Load, который перезапишет коллекцию целиком).
//
// Отказ загрузки — единственная ошибка с «широким» эффектом: секция целиком
// переходит в failed, её причина доступна через Err().
func (s *Section) Load(ctx context.Context) error {
	const op = "section/Load"

	lg := log.From(ctx).With("op", op)

	s.mu.Lock()
	s.state = StateLoading
	s.loadErr = nil
	s.mu.Unlock()

	cc, err := s.st.ListComments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		lg.Error("store error on ListComments", "err", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	s.comments = cc
	s.state = StateReady
	lg.Info("comments loaded", "count", len(cc))

	return nil
}

// State возвращает текущее состояние загрузки.
func (s *Section) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err возвращает причину отказа начальной загрузки (nil вне failed).
func (s *Section) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Comments возвращает снапшот коллекции (копию среза).
func (s *Section) Comments() []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)

	return out
}

// CommentByID возвращает запись по id; false — записи нет
// (например, её поддерево уже удалено другим контроллером).
func (s *Section) CommentByID(id string) (models.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.comments {
		if c.ID == id {
			return c, true
		}
	}

	return models.Comment{}, false
}

// AddComment — добавление комментария верхнего уровня: сабмит корневого
// композера, затем prepend созданной записи (верхний уровень отображается
// «новые сверху»; ответы, напротив, добавляются в конец в порядке вставки).
func (s *Section) AddComment(ctx context.Context) (*models.Comment, error) {
	const op = "section/AddComment"

	created, err := s.root.Submit(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.Prepend(*created)

	return created, nil
}

// Дальше — редьюсеры: единственная поверхность мутации коллекции.
// Все правки после успешных записей в хранилище проходят через них,
// прямого доступа к срезу снаружи нет.

// Prepend вставляет запись в начало коллекции.
func (s *Section) Prepend(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append([]models.Comment{c}, s.comments...)
}

// Append добавляет запись в конец коллекции.
func (s *Section) Append(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, c)
}

// ReplaceByID заменяет запись целиком на серверную версию (last-writer-wins).
func (s *Section) ReplaceByID(c models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = tree.ReplaceByID(s.comments, c)
}

// SetLikes патчит только счётчик лайков одной записи.
func (s *Section) SetLikes(id string, likes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = tree.SetLikes(s.comments, id, likes)
}

// RemoveSubtree удаляет запись вместе со всем её поддеревом ответов.
func (s *Section) RemoveSubtree(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = tree.RemoveSubtree(s.comments, id)
}
