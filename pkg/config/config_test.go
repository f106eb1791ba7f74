package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_TINYPNG_KEY", "expanded-secret")

	path := writeConfig(t, `
file_types:
  - PDF
  - PNG
compression_method:
  - PDF: convertapi
  - PNG: tinypng
convertapi_url: "https://converter.example.com/compress"
convertapi_key: "static-key"
tinypng_key: "${TEST_TINYPNG_KEY}"
paths:
  input_folder: "/in"
  output_folder: "/out"
remote:
  timeout: "30s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.FileTypes) != 2 {
		t.Errorf("FileTypes = %v, want 2 entries", cfg.FileTypes)
	}
	// ENV переменная подставлена
	if cfg.TinyPNGKey != "expanded-secret" {
		t.Errorf("TinyPNGKey = %q, want expanded env value", cfg.TinyPNGKey)
	}
	if cfg.Paths.InputFolder != "/in" {
		t.Errorf("InputFolder = %q, want /in", cfg.Paths.InputFolder)
	}
	if d := cfg.Remote.TimeoutDuration(); d != 30*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 30s", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() error = nil for missing file")
	}
}

func TestLoadRequiresFileTypes(t *testing.T) {
	path := writeConfig(t, `
compression_method:
  - PDF: zip
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil without file_types")
	}
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	path := writeConfig(t, `
file_types:
  - PDF
compression_method:
  - PDF: brotli
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil for unknown strategy")
	}
}

func TestLoadRequiresConvertAPIURL(t *testing.T) {
	path := writeConfig(t, `
file_types:
  - PDF
compression_method:
  - PDF: convertapi
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil when convertapi is used without url")
	}
}

func TestLoadValidatesDefaultChatModel(t *testing.T) {
	path := writeConfig(t, `
file_types:
  - PDF
models:
  default_chat: "ghost"
  definitions:
    real:
      provider: "openai"
      model_name: "gpt-4o-mini"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil for undefined default_chat model")
	}
}

func TestLoadWarnsOnDuplicateEntry(t *testing.T) {
	path := writeConfig(t, `
file_types:
  - PDF
compression_method:
  - PDF: convertapi
  - PDF: zip
convertapi_url: "https://converter.example.com/compress"
`)

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	old := os.Stderr
	os.Stderr = w

	cfg, loadErr := Load(path)

	w.Close()
	os.Stderr = old
	captured, _ := io.ReadAll(r)

	if loadErr != nil {
		t.Fatalf("Load() error = %v (duplicate is a warning, not an error)", loadErr)
	}

	// Дубликат не должен тонуть молча, даже без инициализированного логгера
	if !strings.Contains(string(captured), "duplicate compression_method entry") {
		t.Errorf("stderr output %q does not contain the duplicate warning", captured)
	}

	// Первая запись по-прежнему выигрывает
	if strategy, _ := cfg.StrategyFor("PDF"); strategy != StrategyConvertAPI {
		t.Errorf("StrategyFor(PDF) = %q, want %q", strategy, StrategyConvertAPI)
	}
}

func TestStrategyForFirstMatchWins(t *testing.T) {
	cfg := &AppConfig{
		FileTypes: []string{"PDF"},
		CompressionMethod: []map[string]string{
			{"PDF": StrategyConvertAPI},
			{"PDF": StrategyZip}, // дубликат, должен игнорироваться
			{"PNG": StrategyTinyPNG},
		},
	}

	strategy, ok := cfg.StrategyFor("PDF")
	if !ok {
		t.Fatal("StrategyFor(PDF) ok = false")
	}
	if strategy != StrategyConvertAPI {
		t.Errorf("StrategyFor(PDF) = %q, want first match %q", strategy, StrategyConvertAPI)
	}

	if _, ok := cfg.StrategyFor("MP4"); ok {
		t.Error("StrategyFor(MP4) ok = true for unconfigured type")
	}
}

func TestRemoteConfigDefaults(t *testing.T) {
	var r RemoteConfig

	if d := r.TimeoutDuration(); d != 60*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 60s default", d)
	}

	defaults := r.GetDefaults()
	if defaults.RateLimit != 60 {
		t.Errorf("RateLimit = %d, want 60", defaults.RateLimit)
	}
	if defaults.Burst != 3 {
		t.Errorf("Burst = %d, want 3", defaults.Burst)
	}

	// Кривой timeout тоже откатывается в дефолт
	bad := RemoteConfig{Timeout: "soon"}
	if d := bad.TimeoutDuration(); d != 60*time.Second {
		t.Errorf("TimeoutDuration(invalid) = %v, want 60s", d)
	}
}

func TestGetChatModel(t *testing.T) {
	cfg := &AppConfig{
		Models: ModelsConfig{
			DefaultChat: "glm",
			Definitions: map[string]ModelDef{
				"glm":  {Provider: "zai", ModelName: "glm-4.5-air"},
				"deep": {Provider: "deepseek", ModelName: "deepseek-chat"},
			},
		},
	}

	m, ok := cfg.GetChatModel("")
	if !ok || m.ModelName != "glm-4.5-air" {
		t.Errorf("GetChatModel(\"\") = %+v, %v; want default glm", m, ok)
	}

	m, ok = cfg.GetChatModel("deep")
	if !ok || m.Provider != "deepseek" {
		t.Errorf("GetChatModel(deep) = %+v, %v", m, ok)
	}

	if _, ok := cfg.GetChatModel("ghost"); ok {
		t.Error("GetChatModel(ghost) ok = true, want false")
	}
}
