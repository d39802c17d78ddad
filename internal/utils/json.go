package utils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON достает JSON-объект из ответа модели.
// Снимает обертку ```json ... ```, иначе берет текст от первой { до последней }.
// Текст не чинится: если результат невалиден, возвращается как есть, и его отвергнет декодер.
func ExtractJSON(rawText string) string {
	rawText = strings.TrimSpace(rawText)
	if json.Valid([]byte(rawText)) {
		return rawText
	}

	if m := fencedBlockRegex.FindStringSubmatch(rawText); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	first := strings.Index(rawText, "{")
	last := strings.LastIndex(rawText, "}")
	if first != -1 && last > first {
		return rawText[first : last+1]
	}
	return rawText
}

// StringShort обрезает строку до maxLen, добавляя многоточие.
func StringShort(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
