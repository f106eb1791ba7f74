package organizer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Placer переносит файлы в типовые подпапки, создавая их по требованию.
type Placer struct {
	provisioner *Provisioner
}

// NewPlacer создаёт Placer с указанным Provisioner.
func NewPlacer(p *Provisioner) *Placer {
	return &Placer{provisioner: p}
}

// Place переносит файл в подпапку destinationBase/typeTag.
//
// Имя файла сохраняется. Существующий файл с тем же именем в приёмнике
// перезаписывается — это осознанная политика, перезапуск на частично
// разложенной папке остаётся идемпотентным.
//
// Сценарии:
//   - sourcePath не существует: ("", false)
//   - перенос не удался: ("", false), исходный файл остаётся на месте
//   - успех: (полный новый путь, true)
func (p *Placer) Place(sourcePath, destinationBase, typeTag string) PlacementResult {
	if _, err := os.Stat(sourcePath); err != nil {
		return PlacementResult{}
	}

	typeFolder := filepath.Join(destinationBase, typeTag)
	if _, err := os.Stat(typeFolder); err != nil {
		p.provisioner.Provision(destinationBase, typeTag)
	}

	newPath := filepath.Join(typeFolder, filepath.Base(sourcePath))
	if err := moveFile(sourcePath, newPath); err != nil {
		utils.Warn("file move failed", "source", sourcePath, "dest", newPath, "error", err)
		return PlacementResult{}
	}

	return PlacementResult{NewPath: newPath, OK: true}
}

// moveFile переносит файл, переживая границы файловых систем.
//
// Сначала os.Rename; если не вышло (типично EXDEV при переносе между
// устройствами) — копирование с последующим удалением исходника.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst) // не оставляем огрызок
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
