// Package std содержит стандартные инструменты файлового менеджера.
//
// Каждый инструмент — тонкая обёртка над операцией из pkg/organizer или
// pkg/compress по контракту "Raw In, String Out": JSON аргументы на входе,
// JSON результат на выходе. Флаги успеха нижележащих операций попадают
// в результат как есть, чтобы планировщик мог на них ветвиться.
package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// ScanFolderTool возвращает содержимое папки.
type ScanFolderTool struct{}

// NewScanFolderTool создаёт инструмент сканирования папки.
func NewScanFolderTool() *ScanFolderTool {
	return &ScanFolderTool{}
}

// Definition возвращает описание инструмента для планировщика.
func (t *ScanFolderTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "scan_folder",
		Description: "Scan a folder and return the list of entries along with the folder existence flag. " +
			"Hidden entries (names starting with a dot) are excluded; subfolders are not entered. " +
			"Returns {\"files\": [...], \"exists\": bool}. " +
			"If the folder does not exist or the path is empty, returns an empty list and exists=false. " +
			"An empty folder returns an empty list and exists=true.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"folder_path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute or relative path of the folder to scan",
				},
			},
			"required": []string{"folder_path"},
		},
	}
}

// scanResult — результат сканирования.
type scanResult struct {
	Files  []string `json:"files"`
	Exists bool     `json:"exists"`
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *ScanFolderTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		FolderPath string `json:"folder_path"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	files, exists := organizer.Scan(args.FolderPath)
	if files == nil {
		files = []string{}
	}

	data, err := json.Marshal(scanResult{Files: files, Exists: exists})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
