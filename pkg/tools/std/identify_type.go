package std

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// IdentifyFileTypeTool определяет тип файла по расширению.
type IdentifyFileTypeTool struct{}

// NewIdentifyFileTypeTool создаёт инструмент классификации.
func NewIdentifyFileTypeTool() *IdentifyFileTypeTool {
	return &IdentifyFileTypeTool{}
}

// Definition возвращает описание инструмента для планировщика.
func (t *IdentifyFileTypeTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name: "identify_file_type",
		Description: "Identify the type tag of a file from its extension. " +
			"The tag is the suffix after the last dot, uppercased and without the dot: " +
			"'document.pdf' -> 'PDF', 'archive.tar.gz' -> 'GZ'. " +
			"Returns {\"type_tag\": string, \"recognized\": bool}. " +
			"Empty paths, names without an extension and hidden files like '.gitignore' " +
			"return an empty tag and recognized=false. Pure function, the filesystem is not touched.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path or bare name of the file to classify",
				},
			},
			"required": []string{"file_path"},
		},
	}
}

// classifyResult — результат классификации.
type classifyResult struct {
	TypeTag    string `json:"type_tag"`
	Recognized bool   `json:"recognized"`
}

// Execute выполняет инструмент согласно контракту "Raw In, String Out".
func (t *IdentifyFileTypeTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	var args struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	tag, recognized := organizer.Classify(args.FilePath)

	data, err := json.Marshal(classifyResult{TypeTag: tag, Recognized: recognized})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
