package httpapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pribylovaa/go-comment-section/internal/models"
)

// Проводные структуры контракта (camelCase, parentId: null у корней).
// Конвертация провод <-> домен сосредоточена здесь, доменные типы о JSON
// не знают.

type wireUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type wireComment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ParentID  *string   `json:"parentId"`
	User      wireUser  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Likes     int64     `json:"likes"`
}

type wireCommentInput struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
}

type wireContentUpdate struct {
	Content string `json:"content"`
}

type wireLikesUpdate struct {
	Likes int64 `json:"likes"`
}

func toDomain(w wireComment) models.Comment {
	c := models.Comment{
		ID:        w.ID,
		Content:   w.Content,
		Likes:     w.Likes,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		User: models.User{
			ID:    w.User.ID,
			Name:  w.User.Name,
			Image: w.User.Image,
		},
	}
	if w.ParentID != nil {
		c.ParentID = *w.ParentID
	}

	return c
}

func fromInput(in models.CommentInput) wireCommentInput {
	w := wireCommentInput{Content: in.Content}
	if in.ParentID != "" {
		pid := in.ParentID
		w.ParentID = &pid
	}

	return w
}

// ListComments — GET /comments: полная плоская коллекция.
func (c *Client) ListComments(ctx context.Context) ([]models.Comment, error) {
	const op = "store/httpapi/ListComments"

	var wires []wireComment
	if err := c.do(ctx, op, http.MethodGet, "/comments", nil, &wires); err != nil {
		return nil, err
	}

	out := make([]models.Comment, 0, len(wires))
	for _, w := range wires {
		out = append(out, toDomain(w))
	}

	return out, nil
}

// CreateComment — POST /comments: создаёт корень или ответ,
// возвращает полную серверную запись.
func (c *Client) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	const op = "store/httpapi/CreateComment"

	var w wireComment
	if err := c.do(ctx, op, http.MethodPost, "/comments", fromInput(in), &w); err != nil {
		return nil, err
	}

	out := toDomain(w)

	return &out, nil
}

// UpdateComment — PUT /comments/{id}: заменяет контент,
// возвращает обновлённую запись целиком.
func (c *Client) UpdateComment(ctx context.Context, id string, content string) (*models.Comment, error) {
	const op = "store/httpapi/UpdateComment"

	var w wireComment
	err := c.do(ctx, op, http.MethodPut, "/comments/"+url.PathEscape(id), wireContentUpdate{Content: content}, &w)
	if err != nil {
		return nil, err
	}

	out := toDomain(w)

	return &out, nil
}

// UpdateLikes — PUT /comments/{id}/like: выставляет счётчик лайков.
// Тело ответа контрактом не требуется.
func (c *Client) UpdateLikes(ctx context.Context, id string, likes int64) error {
	const op = "store/httpapi/UpdateLikes"

	return c.do(ctx, op, http.MethodPut, "/comments/"+url.PathEscape(id)+"/like", wireLikesUpdate{Likes: likes}, nil)
}

// DeleteComment — DELETE /comments/{id}. Тело ответа не требуется.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	const op = "store/httpapi/DeleteComment"

	return c.do(ctx, op, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil)
}
