// Package utils предоставляет вспомогательные функции для обработки ответов LLM.
package utils

import "strings"

// CleanJsonBlock удаляет markdown-обёртку вокруг JSON.
//
// LLM часто возвращает JSON внутри кодового блока:
//
//	```json
//	{"steps": [...]}
//	```
//
// Функция снимает такую обёртку и возвращает чистый JSON.
func CleanJsonBlock(s string) string {
	s = strings.TrimSpace(s)

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```Json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}
