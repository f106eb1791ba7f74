package compress

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// ZipStrategy упаковывает один файл в zip контейнер.
//
// Deflate-энкодер берём из klauspost/compress: заметно быстрее
// стандартного при том же уровне сжатия.
type ZipStrategy struct{}

// NewZipStrategy создаёт локальную zip стратегию.
func NewZipStrategy() *ZipStrategy {
	return &ZipStrategy{}
}

// Name возвращает имя стратегии.
func (s *ZipStrategy) Name() string { return "zip" }

// Compress создаёт по пути destPath zip архив с единственной записью —
// исходным файлом под его базовым именем.
func (s *ZipStrategy) Compress(ctx context.Context, sourcePath, destPath string) error {
	in, err := os.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	entry, err := zw.Create(filepath.Base(sourcePath))
	if err != nil {
		s.cleanup(zw, out, destPath)
		return fmt.Errorf("create archive entry: %w", err)
	}
	if _, err := io.Copy(entry, in); err != nil {
		s.cleanup(zw, out, destPath)
		return fmt.Errorf("write archive entry: %w", err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(destPath)
		return fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return fmt.Errorf("close archive: %w", err)
	}
	return nil
}

// cleanup закрывает writer'ы и удаляет недописанный архив.
func (s *ZipStrategy) cleanup(zw *zip.Writer, out *os.File, destPath string) {
	zw.Close()
	out.Close()
	os.Remove(destPath)
}
