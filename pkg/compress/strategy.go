// Package compress реализует сжатие разложенных файлов.
//
// Для каждого типа файла конфигурация привязывает одну из стратегий:
//   - zip: локальный архив (archive/zip + deflate из klauspost/compress)
//   - tinypng: внешний оптимизатор изображений
//   - convertapi: внешний конвертер документов (base64 JSON протокол)
//
// Ни одна стратегия не ретраит: сбой внешнего сервиса терминален для
// конкретного файла, пайплайн идёт дальше.
package compress

import (
	"context"
	"net/http"
)

// Strategy — одна стратегия сжатия: из sourcePath в destPath.
type Strategy interface {
	// Name возвращает имя стратегии (для логов).
	Name() string

	// Compress читает sourcePath и пишет сжатый результат в destPath.
	Compress(ctx context.Context, sourcePath, destPath string) error
}

// HTTPClient — интерфейс для выполнения HTTP запросов.
//
// Стандартный *http.Client его реализует; в тестах подменяется моком.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
