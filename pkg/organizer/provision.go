package organizer

import (
	"os"
	"path/filepath"

	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Provisioner создаёт типовые подпапки в выходной директории.
type Provisioner struct {
	cfg *config.AppConfig
}

// NewProvisioner создаёт Provisioner на основе конфигурации.
func NewProvisioner(cfg *config.AppConfig) *Provisioner {
	return &Provisioner{cfg: cfg}
}

// Provision создаёт подпапки для указанных типов (или для всех типов
// из конфигурации, если typeTags не переданы).
//
// Возвращает true если хотя бы одна папка была создана; false если все
// уже существовали или basePath невалиден. Ошибка создания отдельной
// папки логируется и не прерывает остальные (batch не фатален).
func (p *Provisioner) Provision(basePath string, typeTags ...string) bool {
	if basePath == "" {
		return false
	}

	if len(typeTags) == 0 {
		typeTags = p.cfg.FileTypes
	}

	created := false
	for _, tag := range typeTags {
		if tag == "" {
			continue
		}
		typeFolder := filepath.Join(basePath, tag)

		if _, err := os.Stat(typeFolder); err == nil {
			continue // уже есть
		}

		if err := os.MkdirAll(typeFolder, 0755); err != nil {
			utils.Warn("failed to create type folder", "folder", typeFolder, "error", err)
			continue
		}
		created = true
	}
	return created
}
