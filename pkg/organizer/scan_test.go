package organizer

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.png", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	names, exists := Scan(dir)
	if !exists {
		t.Fatal("Scan() exists = false for existing folder")
	}

	sort.Strings(names)
	want := []string{"a.pdf", "b.png"}
	if len(names) != len(want) {
		t.Fatalf("Scan() returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Scan()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestScanMissingFolder(t *testing.T) {
	names, exists := Scan(filepath.Join(t.TempDir(), "nope"))
	if exists {
		t.Error("Scan() exists = true for missing folder")
	}
	if names != nil {
		t.Errorf("Scan() names = %v, want nil", names)
	}
}

func TestScanEmptyPath(t *testing.T) {
	if _, exists := Scan(""); exists {
		t.Error("Scan(\"\") exists = true, want false")
	}
}

func TestScanEmptyFolder(t *testing.T) {
	names, exists := Scan(t.TempDir())
	if !exists {
		t.Fatal("Scan() exists = false for empty folder")
	}
	if len(names) != 0 {
		t.Errorf("Scan() names = %v, want empty", names)
	}
}
