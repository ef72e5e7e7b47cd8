package httpapi

// Тесты HTTP-адаптера хранилища (internal/store/httpapi).
//
// Проверяем поверх httptest-сервера:
//  - метод/путь/заголовки/тело каждой из пяти операций контракта;
//  - конвертацию провод -> домен (parentId: null -> "");
//  - извлечение текста ошибки из {"message": ...} и общий текст без него;
//  - маппинг транспортного сбоя в store.ErrUnavailable.

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-comment-section/internal/config"
	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/internal/store"
)

func newClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Config{}
	cfg.API.BaseURL = srv.URL + "/api/"
	cfg.API.UserAgent = "comment-section-test"
	cfg.Timeouts.Service = 5 * time.Second

	return New(cfg), srv
}

func TestClient_ListComments(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/comments", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.Equal(t, "comment-section-test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","content":"root","parentId":null,
			 "user":{"id":"u1","name":"Ann"},
			 "createdAt":"2025-06-01T12:00:00Z","updatedAt":"2025-06-01T12:00:00Z","likes":3},
			{"id":"b","content":"reply","parentId":"a",
			 "user":{"id":"u2","name":"Bob","image":"/bob.png"},
			 "createdAt":"2025-06-01T12:05:00Z","updatedAt":"2025-06-01T12:05:00Z","likes":0}
		]`))
	})

	got, err := c.ListComments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, models.Comment{
		ID:        "a",
		Content:   "root",
		ParentID:  "",
		User:      models.User{ID: "u1", Name: "Ann"},
		Likes:     3,
		CreatedAt: created,
		UpdatedAt: created,
	}, got[0])

	require.Equal(t, "a", got[1].ParentID)
	require.Equal(t, "/bob.png", got[1].User.Image)
}

func TestClient_CreateComment(t *testing.T) {
	tests := []struct {
		name     string
		in       models.CommentInput
		wantBody string
	}{
		{
			name:     "root_has_null_parent",
			in:       models.CommentInput{Content: "hello"},
			wantBody: `{"content":"hello","parentId":null}`,
		},
		{
			name:     "reply_carries_parent_id",
			in:       models.CommentInput{Content: "hi", ParentID: "a"},
			wantBody: `{"content":"hi","parentId":"a"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/api/comments", r.URL.Path)

				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				require.JSONEq(t, tc.wantBody, string(body))

				w.WriteHeader(http.StatusCreated)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"id": "x", "content": tc.in.Content, "parentId": nil,
					"user":      map[string]any{"id": "u1", "name": "Ann"},
					"createdAt": "2025-06-01T12:00:00Z",
					"updatedAt": "2025-06-01T12:00:00Z",
					"likes":     0,
				})
			})

			got, err := c.CreateComment(context.Background(), tc.in)
			require.NoError(t, err)
			require.Equal(t, "x", got.ID)
			require.Equal(t, tc.in.Content, got.Content)
		})
	}
}

func TestClient_UpdateComment(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/comments/a", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"content":"edited"}`, string(body))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "a", "content": "edited", "parentId": nil,
			"user":      map[string]any{"id": "u1", "name": "Ann"},
			"createdAt": "2025-06-01T12:00:00Z",
			"updatedAt": "2025-06-01T12:30:00Z",
			"likes":     2,
		})
	})

	got, err := c.UpdateComment(context.Background(), "a", "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", got.Content)
	require.Equal(t, int64(2), got.Likes)
}

func TestClient_UpdateLikes(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/comments/a/like", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"likes":4}`, string(body))

		// Тело ответа контрактом не требуется.
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdateLikes(context.Background(), "a", 4))
}

func TestClient_DeleteComment(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/comments/a", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteComment(context.Background(), "a"))
}

// Не-2xx с JSON-телом: наружу идёт message сервера, 400 матчится
// с ErrInvalidArgument, 404 — с ErrNotFound.
func TestClient_StatusErrors(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"comment cannot be empty"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"comment not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	_, err := c.CreateComment(context.Background(), models.CommentInput{Content: ""})
	require.ErrorIs(t, err, store.ErrInvalidArgument)

	var serr *store.StatusError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "comment cannot be empty", serr.Message)

	err = c.DeleteComment(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

// Не-2xx без message: общий текст по коду.
func TestClient_StatusError_NoMessage(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListComments(context.Background())

	var serr *store.StatusError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "request failed with status 502", serr.Error())
}

// Транспортный сбой (запрос не дошёл): ErrUnavailable.
func TestClient_TransportError(t *testing.T) {
	c, srv := newClient(t, func(http.ResponseWriter, *http.Request) {})
	srv.Close()

	_, err := c.ListComments(context.Background())
	require.ErrorIs(t, err, store.ErrUnavailable)
}

// Bearer-токен из конфигурации уходит в Authorization.
func TestClient_AuthToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.AuthToken = "secret"
	cfg.Timeouts.Service = 5 * time.Second

	c := New(cfg)
	_, err := c.ListComments(context.Background())
	require.NoError(t, err)
}
