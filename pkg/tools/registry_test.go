package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// mockTool — минимальный инструмент для тестов реестра.
type mockTool struct {
	def ToolDefinition
}

func (m *mockTool) Definition() ToolDefinition { return m.def }

func (m *mockTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	return "ok", nil
}

func validDef(name string) ToolDefinition {
	return ToolDefinition{
		Name:        name,
		Description: "test tool",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"input": map[string]interface{}{"type": "string"},
			},
			"required": []string{"input"},
		},
	}
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	tool := &mockTool{def: validDef("alpha")}

	if err := r.Register(tool); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !r.Has("alpha") {
		t.Error("Has(alpha) = false after Register")
	}

	got, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != tool {
		t.Error("Get() returned a different tool")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("ghost"); err == nil {
		t.Fatal("Get(ghost) error = nil, want error")
	}
	if r.Has("ghost") {
		t.Error("Has(ghost) = true on empty registry")
	}
}

func TestRegistryValidation(t *testing.T) {
	tests := []struct {
		name string
		def  ToolDefinition
	}{
		{
			name: "empty name",
			def: ToolDefinition{
				Parameters: map[string]interface{}{"type": "object"},
			},
		},
		{
			name: "nil parameters",
			def:  ToolDefinition{Name: "x"},
		},
		{
			name: "missing type field",
			def: ToolDefinition{
				Name:       "x",
				Parameters: map[string]interface{}{"properties": map[string]interface{}{}},
			},
		},
		{
			name: "type is not object",
			def: ToolDefinition{
				Name:       "x",
				Parameters: map[string]interface{}{"type": "array"},
			},
		},
		{
			name: "required is not an array",
			def: ToolDefinition{
				Name: "x",
				Parameters: map[string]interface{}{
					"type":     "object",
					"required": "input",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.Register(&mockTool{def: tt.def}); err == nil {
				t.Fatal("Register() error = nil, want validation error")
			}
		})
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(&mockTool{def: validDef(name)}); err != nil {
			t.Fatalf("Register(%s) error = %v", name, err)
		}
	}

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRegistryExportCatalog(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&mockTool{def: validDef("alpha")}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	catalog, err := r.ExportCatalog()
	if err != nil {
		t.Fatalf("ExportCatalog() error = %v", err)
	}

	var defs []ToolDefinition
	if err := json.Unmarshal([]byte(catalog), &defs); err != nil {
		t.Fatalf("Catalog is not valid JSON: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "alpha" {
		t.Errorf("Catalog = %v, want single alpha definition", defs)
	}
	if !strings.Contains(catalog, "test tool") {
		t.Error("Catalog does not contain the usage text")
	}
}
