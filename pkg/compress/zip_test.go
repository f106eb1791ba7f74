package compress

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestZipStrategyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "report.pdf")
	content := []byte("not really a pdf, but compressible: aaaaaaaaaaaaaaaaaaaaaaaa")
	if err := os.WriteFile(source, content, 0644); err != nil {
		t.Fatalf("Failed to create source file: %v", err)
	}

	dest := filepath.Join(dir, "report_compressed.pdf.zip")
	s := NewZipStrategy()
	if err := s.Compress(context.Background(), source, dest); err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	// Архив должен открываться и содержать одну запись с исходным именем
	zr, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("Archive is not readable: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 {
		t.Fatalf("Archive contains %d entries, want 1", len(zr.File))
	}
	if zr.File[0].Name != "report.pdf" {
		t.Errorf("Entry name = %q, want %q", zr.File[0].Name, "report.pdf")
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Failed to open entry: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("Failed to read entry: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Entry content = %q, want %q", data, content)
	}
}

func TestZipStrategyMissingSource(t *testing.T) {
	dir := t.TempDir()
	s := NewZipStrategy()

	err := s.Compress(context.Background(), filepath.Join(dir, "ghost.pdf"), filepath.Join(dir, "out.zip"))
	if err == nil {
		t.Fatal("Compress() error = nil for missing source")
	}
	// Недописанного архива остаться не должно
	if _, statErr := os.Stat(filepath.Join(dir, "out.zip")); !os.IsNotExist(statErr) {
		t.Error("Partial archive left behind")
	}
}
