// Package sanitize очищает пользовательский текст перед сохранением.
// Plain удаляет любую разметку, Rich оставляет безопасное форматирование.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Plain удаляет HTML и обрезает пробелы по краям.
// Сущности раскодируются обратно: результат хранится как обычный текст.
func Plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Rich оставляет безопасную разметку (абзацы, списки, ссылки) и удаляет скрипты и обработчики событий.
func Rich(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
