package ai

import "strings"

// ExtractJSON вырезает из ответа модели участок от первой "{" до последней "}".
// Модели часто оборачивают JSON в пояснения или markdown-блоки.
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", ErrNoJSON
	}
	return text[start : end+1], nil
}
