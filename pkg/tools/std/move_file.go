package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// MoveFileTool переносит файл в типовую подпапку.
type MoveFileTool struct {
	placer *organizer.Placer
}

// NewMoveFileTool создаёт инструмент переноса файла.
func NewMoveFileTool(p *organizer.Placer) *MoveFileTool {
	return &MoveFileTool{placer: p}
}

// Definition возвращает описание инструмента для планировщика.
func (t *MoveFileTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "move_file",
		Description: "Move a file into the subfolder <target_base_path>/<file_type>, creating the " +
			"subfolder first when missing. The file keeps its original name; an existing file with " +
			"the same name at the destination is overwritten. " +
			"Returns {\"new_path\": string, \"ok\": bool}. " +
			"When the source file does not exist or the move fails, new_path is empty, ok=false " +
			"and the source file is left where it was. Check ok before compressing the file.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"source_file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the file to move",
				},
				"target_base_path": map[string]interface{}{
					"type":        "string",
					"description": "Base directory holding the per-type subfolders",
				},
				"file_type": map[string]interface{}{
					"type":        "string",
					"description": "Type tag of the file (e.g. 'PDF'), names the destination subfolder",
				},
			},
			"required": []string{"source_file_path", "target_base_path", "file_type"},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *MoveFileTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		SourceFilePath string `json:"source_file_path"`
		TargetBasePath string `json:"target_base_path"`
		FileType       string `json:"file_type"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.SourceFilePath == "" || args.TargetBasePath == "" || args.FileType == "" {
		return "", fmt.Errorf("source_file_path, target_base_path and file_type are required")
	}

	result := t.placer.Place(args.SourceFilePath, args.TargetBasePath, args.FileType)

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
