package composer

// Тесты композера (internal/composer/composer.go).
//
// Проверяем:
//  - локальную валидацию: пустой после TrimSpace текст не доходит до стораджа;
//  - ровно один вызов CreateComment на успешный Submit (и ровно один
//    одновременный in-flight на экземпляр);
//  - очистку буфера при успехе и его сохранность при отказе;
//  - Cancel.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейса хранилища:
//   mockgen -source=./internal/store/store.go -destination=./mocks/store.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/composer -v -race -count=1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/mocks"
)

func newComposerWithMock(t *testing.T, parentID string) (*Composer, *mocks.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStore(ctrl)
	return New(ms, parentID), ms
}

// Пустой и «пробельный» текст: сторадж не вызывается (мок без EXPECT упадёт
// на любом вызове), ошибка локальная.
func TestComposer_Submit_Validation(t *testing.T) {
	c, _ := newComposerWithMock(t, "")

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrEmptyContent)
	require.ErrorIs(t, c.Err(), ErrEmptyContent)

	c.SetContent("   \n\t ")
	_, err = c.Submit(context.Background())
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestComposer_Submit_Success(t *testing.T) {
	c, ms := newComposerWithMock(t, "parent-1")

	created := &models.Comment{ID: "x", Content: "hello", ParentID: "parent-1"}
	ms.EXPECT().
		CreateComment(gomock.Any(), models.CommentInput{Content: "hello", ParentID: "parent-1"}).
		Return(created, nil).
		Times(1)

	// Контент нормализуется перед отправкой.
	c.SetContent("  hello  ")

	got, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, created, got)

	// Успех: буфер и ошибка очищены, отправка завершена.
	require.Empty(t, c.Content())
	require.NoError(t, c.Err())
	require.False(t, c.Submitting())
}

// Отказ стораджа: буфер цел — пользователь повторяет без перенабора.
func TestComposer_Submit_StoreError(t *testing.T) {
	c, ms := newComposerWithMock(t, "")

	storeErr := errors.New("boom")
	ms.EXPECT().
		CreateComment(gomock.Any(), gomock.Any()).
		Return(nil, storeErr)

	c.SetContent("still here")

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, storeErr)
	require.Equal(t, "still here", c.Content())
	require.ErrorIs(t, c.Err(), storeErr)
	require.False(t, c.Submitting())
}

// Ровно одна отправка в полёте: вторая отклоняется локально,
// CreateComment вызывается один раз.
func TestComposer_Submit_SingleInFlight(t *testing.T) {
	c, ms := newComposerWithMock(t, "")

	entered := make(chan struct{})
	release := make(chan struct{})
	ms.EXPECT().
		CreateComment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.CommentInput) (*models.Comment, error) {
			close(entered)
			<-release
			return &models.Comment{ID: "x"}, nil
		}).
		Times(1)

	c.SetContent("once")

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-entered
	require.True(t, c.Submitting())

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not finish")
	}
}

// Cancel сбрасывает и буфер, и ошибку формы.
func TestComposer_Cancel(t *testing.T) {
	c, _ := newComposerWithMock(t, "parent-1")

	_, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrEmptyContent)

	c.SetContent("draft")
	c.Cancel()

	require.Empty(t, c.Content())
	require.NoError(t, c.Err())
}
