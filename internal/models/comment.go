// Package models содержит доменные сущности виджета комментариев.
package models

import "time"

// User — автор комментария. Неизменяем со стороны виджета:
// всегда приходит от бэкенда вместе с комментарием.
type User struct {
	ID    string
	Name  string
	Image string // опционально; "" — аватара нет
}

// Comment — внутренняя доменная модель комментария.
// Важно:
//   - ID — строковый идентификатор, генерируется сервером; уникален в пределах коллекции.
//   - ParentID — ID родителя; "" означает корневой комментарий
//     (на проводе это parentId: null, конвертация — забота транспорта).
//   - Likes растёт только через действие «лайк»; сервер — источник истины.
//   - CreatedAt/UpdatedAt — на проводе ISO-метки, внутри time.Time.
//
// «Висячий» ParentID (родитель отсутствует в коллекции) не считается ошибкой:
// при обходе дерева такой комментарий просто никому не сматчится как ребёнок.
type Comment struct {
	ID        string
	Content   string
	ParentID  string
	User      User
	Likes     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentInput — модель записи: создание корневого комментария или ответа.
// Для обновления контента используется более узкий payload {content} на
// уровне стораджа.
type CommentInput struct {
	Content  string
	ParentID string // "" — корневой
}
