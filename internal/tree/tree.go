// Package tree — движок дерева комментариев: чистые функции над снапшотом
// плоской коллекции с родительскими ссылками.
//
// Коллекция — единственная структура данных: упорядоченный срез, который
// сканируется линейными фильтрами. Индексов по родителю и мемоизации нет:
// при ожидаемых размерах веток O(n·d) на удаление поддерева приемлемо.
package tree

import "github.com/pribylovaa/go-comment-section/internal/models"

// ByParent возвращает прямых детей parentID в порядке следования в коллекции
// (порядок вставки и есть порядок отображения, без сортировки по времени).
// parentID == "" — корневой уровень. Нет совпадений — пустой результат.
func ByParent(cc []models.Comment, parentID string) []models.Comment {
	var out []models.Comment
	for _, c := range cc {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}

	return out
}

// Walk рекурсивно обходит ветку parentID «сверху вниз»: для каждого
// комментария вызывается fn с его уровнем вложенности, затем обходятся его
// дети с level+1. Глубина не ограничивается. Обход отделён от слоя
// отображения: fn — любой потребитель (рендерер, сбор статистики, тесты).
func Walk(cc []models.Comment, parentID string, level int, fn func(c models.Comment, level int)) {
	for _, c := range ByParent(cc, parentID) {
		fn(c, level)
		Walk(cc, c.ID, level+1, fn)
	}
}

// RemoveSubtree возвращает коллекцию без targetID и без всех комментариев,
// транзитивно достижимых от него по цепочкам ParentID.
//
// Алгоритм — как в один проход по уровню: для каждого прямого ребёнка
// рекурсивно удаляется его поддерево, затем удаляется сам targetID.
// Недостижимые от targetID комментарии сохраняются без изменений
// и в исходном порядке.
func RemoveSubtree(cc []models.Comment, targetID string) []models.Comment {
	out := cc
	for _, child := range ByParent(cc, targetID) {
		out = RemoveSubtree(out, child.ID)
	}

	filtered := make([]models.Comment, 0, len(out))
	for _, c := range out {
		if c.ID != targetID {
			filtered = append(filtered, c)
		}
	}

	return filtered
}

// ReplaceByID заменяет запись с updated.ID на updated (last-writer-wins).
// Если записи нет — коллекция возвращается как есть.
func ReplaceByID(cc []models.Comment, updated models.Comment) []models.Comment {
	out := make([]models.Comment, len(cc))
	copy(out, cc)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			break
		}
	}

	return out
}

// SetLikes патчит только поле Likes записи с данным id,
// остальные поля и записи не трогаются.
func SetLikes(cc []models.Comment, id string, likes int64) []models.Comment {
	out := make([]models.Comment, len(cc))
	copy(out, cc)
	for i := range out {
		if out[i].ID == id {
			out[i].Likes = likes
			break
		}
	}

	return out
}
