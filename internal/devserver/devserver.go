// Package devserver — in-memory фикстура удалённого хранилища комментариев
// для локальной разработки и интеграционных тестов.
//
// Реализует тот же REST/JSON контракт, на который смотрит httpapi-клиент:
//
//	GET    /comments           — вся плоская коллекция
//	POST   /comments           — создание корня или ответа
//	PUT    /comments/{id}      — замена контента
//	PUT    /comments/{id}/like — новое значение счётчика лайков
//	DELETE /comments/{id}      — удаление вместе с поддеревом
//
// Это не продакшен-хранилище: без персистентности, авторизации и
// многопользовательской атрибуции (все записи приписываются демо-автору).
// Ошибки отдаются JSON-телом {"message": "..."} — именно этот текст
// клиент показывает рядом с неуспешным действием.
package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Проводные структуры контракта (те же имена полей, что у httpapi-клиента).

type apiUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type apiComment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parentId"`
	User      apiUser   `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Likes     int64     `json:"likes"`
}

type createRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

type updateRequest struct {
	Content string `json:"content"`
}

type likeRequest struct {
	Likes int64 `json:"likes"`
}

// Options — параметры сборки dev-сервера.
type Options struct {
	Logger *slog.Logger
	// Максимальная длина контента; <=0 — лимит выключен.
	MaxContent int
	// BasePath, например "/api"; пустой — роуты на корне.
	BasePath string
}

// Server — само хранилище фикстуры: упорядоченный срез под мьютексом,
// порядок вставки и есть порядок выдачи.
type Server struct {
	opts Options
	user apiUser

	mu       sync.Mutex
	comments []apiComment
}

// New создаёт пустой dev-сервер.
func New(opts Options) *Server {
	return &Server{
		opts: opts,
		user: apiUser{
			ID:   uuid.NewString(),
			Name: "Dev User",
		},
	}
}

// Handler собирает chi-роутер с мидлварами и маршрутами контракта.
func (s *Server) Handler() http.Handler {
	root := chi.NewRouter()

	root.Use(
		Recover(),
		RequestID(),
		Logging(s.opts.Logger),
	)

	if s.opts.BasePath != "" {
		sub := chi.NewRouter()
		s.registerRoutes(sub)
		root.Mount(s.opts.BasePath, sub)
		return root
	}

	s.registerRoutes(root)
	return root
}

func (s *Server) registerRoutes(r chi.Router) {
	r.Get("/comments", s.listComments)
	r.Post("/comments", s.createComment)
	r.Put("/comments/{id}", s.updateComment)
	r.Put("/comments/{id}/like", s.updateLikes)
	r.Delete("/comments/{id}", s.deleteComment)
}

func (s *Server) listComments(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]apiComment, len(s.comments))
	copy(out, s.comments)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "comment cannot be empty")
		return
	}
	if s.opts.MaxContent > 0 && len(content) > s.opts.MaxContent {
		writeError(w, http.StatusBadRequest, "comment is too long")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ParentID != nil && *req.ParentID != "" {
		if _, ok := s.indexByID(*req.ParentID); !ok {
			writeError(w, http.StatusNotFound, "parent comment not found")
			return
		}
	}

	now := time.Now().UTC()
	c := apiComment{
		ID:        uuid.NewString(),
		Content:   content,
		ParentID:  req.ParentID,
		User:      s.user,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments = append(s.comments, c)

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, http.StatusBadRequest, "comment cannot be empty")
		return
	}
	if s.opts.MaxContent > 0 && len(content) > s.opts.MaxContent {
		writeError(w, http.StatusBadRequest, "comment is too long")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "comment not found")
		return
	}

	s.comments[i].Content = content
	s.comments[i].UpdatedAt = time.Now().UTC()

	writeJSON(w, http.StatusOK, s.comments[i])
}

func (s *Server) updateLikes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req likeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Likes < 0 {
		writeError(w, http.StatusBadRequest, "likes must be non-negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "comment not found")
		return
	}

	s.comments[i].Likes = req.Likes
	s.comments[i].UpdatedAt = time.Now().UTC()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexByID(id); !ok {
		writeError(w, http.StatusNotFound, "comment not found")
		return
	}

	// Поддерево удаляется и на сервере: клиент делает то же локально,
	// коллекции остаются согласованными без повторной загрузки.
	s.removeSubtree(id)

	w.WriteHeader(http.StatusNoContent)
}

// indexByID — позиция записи в срезе; вызывается под мьютексом.
func (s *Server) indexByID(id string) (int, bool) {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i, true
		}
	}

	return 0, false
}

// removeSubtree убирает запись и всё транзитивно достижимое от неё
// по parentId; вызывается под мьютексом.
func (s *Server) removeSubtree(id string) {
	// Сначала фиксируем список прямых детей: рекурсия компактит срез,
	// и итерироваться по нему в этот момент нельзя.
	var children []string
	for _, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			children = append(children, c.ID)
		}
	}
	for _, child := range children {
		s.removeSubtree(child)
	}

	filtered := s.comments[:0]
	for _, c := range s.comments {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	s.comments = filtered
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// writeError — JSON-тело ошибки контракта: {"message": "..."}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}
