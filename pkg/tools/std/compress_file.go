package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/compress"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// CompressFileTool сжимает файл стратегией его типа.
type CompressFileTool struct {
	compressor *compress.Compressor
}

// NewCompressFileTool создаёт инструмент сжатия.
func NewCompressFileTool(c *compress.Compressor) *CompressFileTool {
	return &CompressFileTool{compressor: c}
}

// Definition возвращает описание инструмента для планировщика.
func (t *CompressFileTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "compress_file",
		Description: "Compress a file using the compression method configured for its type " +
			"(local zip archive, remote image optimizer or remote document converter). " +
			"The result is written next to the source as <name>_compressed.<ext>. " +
			"Returns {\"compressed_path\": string, \"ok\": bool}. " +
			"Missing file, unrecognized type, type without a configured method, remote service " +
			"failure or local I/O error all yield an empty path and ok=false. " +
			"There are no retries: a failure is final for this file.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the file to compress (usually the new_path returned by move_file)",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *CompressFileTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if args.FilePath == "" {
		return "", fmt.Errorf("file_path is required")
	}

	result := t.compressor.Compress(ctx, args.FilePath)

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
