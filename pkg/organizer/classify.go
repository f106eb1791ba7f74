package organizer

import (
	"path/filepath"
	"strings"
)

// Classify извлекает нормализованный тег типа файла из расширения.
//
// Тег — суффикс после последней точки имени файла, в верхнем регистре
// без точки: "document.pdf" → ("PDF", true), "archive.tar.gz" → ("GZ", true).
//
// Пустой тег и false когда тип определить нельзя:
//   - пустой путь
//   - имя без расширения ("Makefile")
//   - скрытый файл без дальнейшего суффикса (".gitignore")
//   - имя с завершающей точкой ("weird.")
//
// Чистая функция, файловая система не трогается.
func Classify(filePath string) (string, bool) {
	if filePath == "" {
		return "", false
	}

	base := filepath.Base(filePath)
	idx := strings.LastIndex(base, ".")
	if idx <= 0 || idx == len(base)-1 {
		return "", false
	}

	return strings.ToUpper(base[idx+1:]), true
}
