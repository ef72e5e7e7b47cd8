// Package render — текстовая поверхность отображения секции комментариев.
//
// Движок дерева (internal/tree) ничего не знает об отображении; здесь его
// обход превращается в отступы терминального вывода. Любая другая поверхность
// подключается тем же способом — своим потребителем tree.Walk.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/pribylovaa/go-comment-section/internal/models"
	"github.com/pribylovaa/go-comment-section/internal/tree"
)

const indent = "    "

// Tree пишет вложенное представление коллекции: ответы с отступом под
// родителем, без ограничения глубины. Пустая коллекция — плейсхолдер
// «комментариев нет».
func Tree(w io.Writer, cc []models.Comment, now time.Time) {
	if len(cc) == 0 {
		fmt.Fprintln(w, "No comments yet. Be the first to comment!")
		return
	}

	tree.Walk(cc, "", 0, func(c models.Comment, level int) {
		prefix := ""
		for i := 0; i < level; i++ {
			prefix += indent
		}

		name := c.User.Name
		if name == "" {
			name = "Anonymous"
		}

		fmt.Fprintf(w, "%s%s (%s) [+%d]\n", prefix, name, Age(now, c.CreatedAt), c.Likes)
		fmt.Fprintf(w, "%s%s\n", prefix, c.Content)
	})
}

// Age — грубый относительный возраст записи для вывода рядом с автором.
func Age(now, createdAt time.Time) string {
	d := now.Sub(createdAt)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
