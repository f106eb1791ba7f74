package plan

import (
	"context"
	"testing"

	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// echoTool — инструмент, возвращающий свои аргументы.
type echoTool struct {
	name string
}

func (e *echoTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        e.name,
		Description: "echoes its arguments",
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

func (e *echoTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	return argsJSON, nil
}

func testRegistry(t *testing.T, names ...string) *tools.Registry {
	t.Helper()
	r := tools.NewRegistry()
	for _, name := range names {
		if err := r.Register(&echoTool{name: name}); err != nil {
			t.Fatalf("Failed to register %s: %v", name, err)
		}
	}
	return r
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSteps int
		wantErr   bool
	}{
		{
			name:      "plain json",
			input:     `{"steps": [{"tool": "scan_folder", "args": {"folder_path": "/in"}}]}`,
			wantSteps: 1,
		},
		{
			name:      "json in markdown fence",
			input:     "```json\n{\"steps\": [{\"tool\": \"scan_folder\"}, {\"tool\": \"move_file\"}]}\n```",
			wantSteps: 2,
		},
		{
			name:    "not json",
			input:   "I think you should scan the folder first",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(p.Steps) != tt.wantSteps {
				t.Errorf("Parse() steps = %d, want %d", len(p.Steps), tt.wantSteps)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	registry := testRegistry(t, "scan_folder", "move_file")

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid plan",
			input: `{"steps": [{"tool": "scan_folder", "args": {"folder_path": "/in"}}, {"tool": "move_file"}]}`,
		},
		{
			name:    "empty plan",
			input:   `{"steps": []}`,
			wantErr: true,
		},
		{
			name:    "unknown tool invalidates whole plan",
			input:   `{"steps": [{"tool": "scan_folder"}, {"tool": "delete_everything"}]}`,
			wantErr: true,
		},
		{
			name:    "empty tool name",
			input:   `{"steps": [{"tool": ""}]}`,
			wantErr: true,
		},
		{
			name:    "args is not an object",
			input:   `{"steps": [{"tool": "scan_folder", "args": [1, 2]}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			err = p.Validate(registry)
			if tt.wantErr && err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
		})
	}
}
