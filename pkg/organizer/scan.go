package organizer

import (
	"os"
	"strings"
)

// Scan возвращает имена записей в папке и флаг её существования.
//
// Скрытые записи (имя начинается с точки) исключаются. В подпапки не
// заходим — только первый уровень, в порядке выдачи файловой системы.
//
// Сценарии:
//   - folderPath пустой или не существует: (nil, false)
//   - папка есть, но прочитать нельзя: (nil, false)
//   - пустая папка: ([], true)
func Scan(folderPath string) ([]string, bool) {
	if folderPath == "" {
		return nil, false
	}

	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return nil, false
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, true
}
