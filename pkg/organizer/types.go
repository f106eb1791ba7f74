// Package organizer реализует пайплайн раскладки файлов по типам:
// сканирование папки, определение типа, подготовка подпапок, перенос
// и сжатие (через pkg/compress).
//
// Контракт всех операций: ожидаемые сбои (нет файла, нет типа, ошибка I/O)
// возвращаются как пустое значение + false, а не как error/panic.
// Вызывающий обязан проверять флаг перед следующей стадией.
package organizer

import "context"

// PlacementResult — результат переноса файла в типовую подпапку.
// NewPath пустой когда OK == false.
type PlacementResult struct {
	NewPath string `json:"new_path"`
	OK      bool   `json:"ok"`
}

// CompressionResult — результат сжатия файла.
// CompressedPath пустой когда OK == false.
type CompressionResult struct {
	CompressedPath string `json:"compressed_path"`
	OK             bool   `json:"ok"`
}

// Compressor — контракт сжатия для пайплайна.
//
// Реализуется pkg/compress. Интерфейс здесь, чтобы organizer не зависел
// от конкретных стратегий.
type Compressor interface {
	Compress(ctx context.Context, filePath string) CompressionResult
}
