package std

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilkoid/poryadok-ai/pkg/s3storage"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// UploadArtifactTool выгружает сжатый артефакт в объектное хранилище.
//
// Опциональный шаг после compress_file: локальная копия остаётся,
// выгрузка — дополнительное место хранения, не перенос.
type UploadArtifactTool struct {
	client s3storage.ClientInterface
}

// NewUploadArtifactTool создаёт инструмент выгрузки артефактов.
func NewUploadArtifactTool(c s3storage.ClientInterface) *UploadArtifactTool {
	return &UploadArtifactTool{client: c}
}

// Definition возвращает описание инструмента для планировщика.
func (t *UploadArtifactTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "upload_artifact",
		Description: "Upload a local file (typically a compressed artifact) to the configured " +
			"object storage bucket. The optional key defaults to the file's base name. " +
			"Returns {\"key\": string, \"bucket\": string, \"size\": int} on success. " +
			"Only use this tool when object storage is enabled in the configuration.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Local path of the file to upload",
				},
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Optional object key; defaults to the file's base name",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *UploadArtifactTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
		Key      string `json:"key,omitempty"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}

	// Защита от path traversal в ключе
	if args.Key != "" && strings.Contains(filepath.Clean(args.Key), "..") {
		return "", fmt.Errorf("path traversal detected: key contains '..'")
	}

	if _, err := os.Stat(args.FilePath); err != nil {
		return "", fmt.Errorf("file does not exist: %s", args.FilePath)
	}

	uploaded, err := t.client.UploadFile(ctx, args.FilePath, args.Key)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(uploaded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
