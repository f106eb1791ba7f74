package std

import (
	"github.com/ilkoid/poryadok-ai/pkg/compress"
	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/s3storage"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// NewFileManagerTools создает карту всех инструментов файлового менеджера.
//
// Удобная функция для массовой регистрации: возвращает map[string]tools.Tool,
// который можно прогнать через Registry.Register.
//
// s3client опционален (nil — инструмент выгрузки не создаётся).
func NewFileManagerTools(
	provisioner *organizer.Provisioner,
	placer *organizer.Placer,
	compressor *compress.Compressor,
	s3client s3storage.ClientInterface,
) map[string]tools.Tool {
	result := map[string]tools.Tool{
		"scan_folder":         NewScanFolderTool(),
		"identify_file_type":  NewIdentifyFileTypeTool(),
		"create_type_folders": NewCreateTypeFoldersTool(provisioner),
		"move_file":           NewMoveFileTool(placer),
		"compress_file":       NewCompressFileTool(compressor),
	}

	if s3client != nil {
		result["upload_artifact"] = NewUploadArtifactTool(s3client)
	}

	return result
}
