package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// CreateTypeFoldersTool создаёт типовые подпапки в выходной директории.
type CreateTypeFoldersTool struct {
	provisioner *organizer.Provisioner
}

// NewCreateTypeFoldersTool создаёт инструмент подготовки подпапок.
func NewCreateTypeFoldersTool(p *organizer.Provisioner) *CreateTypeFoldersTool {
	return &CreateTypeFoldersTool{provisioner: p}
}

// Definition возвращает описание инструмента для планировщика.
func (t *CreateTypeFoldersTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "create_type_folders",
		Description: "Create per-type subfolders under a base path. " +
			"When file_type is given, only that subfolder is created; otherwise one subfolder " +
			"per configured file type. Existing folders are skipped, a failure to create one " +
			"folder is logged and does not stop the others. " +
			"Returns {\"created_any\": bool} — true only if at least one folder was newly created; " +
			"false when everything already existed or the base path is invalid.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"base_path": map[string]interface{}{
					"type":        "string",
					"description": "Base directory the type subfolders are created in",
				},
				"file_type": map[string]interface{}{
					"type":        "string",
					"description": "Optional single type tag (e.g. 'PDF') to create a folder for",
				},
			},
			"required": []string{"base_path"},
		},
	}
}

// provisionResult — результат создания папок.
type provisionResult struct {
	CreatedAny bool `json:"created_any"`
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *CreateTypeFoldersTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		BasePath string `json:"base_path"`
		FileType string `json:"file_type,omitempty"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.BasePath == "" {
		return "", fmt.Errorf("base_path is required")
	}

	var created bool
	if args.FileType == "" {
		created = t.provisioner.Provision(args.BasePath)
	} else {
		created = t.provisioner.Provision(args.BasePath, args.FileType)
	}

	data, err := json.Marshal(provisionResult{CreatedAny: created})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
