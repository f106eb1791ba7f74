// plan-test — CLI утилита для проверки плана без LLM и без выполнения.
//
// Читает JSON план из файла (или stdin) и валидирует его против
// реестра инструментов. Полезно для отладки промптов планировщика:
// сохранённый ответ модели можно прогнать через валидацию локально.
//
// Использование:
//   plan-test [-config config.yaml] plan.json
//   cat plan.json | plan-test
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ilkoid/poryadok-ai/pkg/compress"
	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/plan"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
	"github.com/ilkoid/poryadok-ai/pkg/tools/std"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Конфигурация и реестр (S3 не нужен для валидации)
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	provisioner := organizer.NewProvisioner(cfg)
	placer := organizer.NewPlacer(provisioner)
	compressor := compress.NewCompressor(cfg)

	registry := tools.NewRegistry()
	for _, tool := range std.NewFileManagerTools(provisioner, placer, compressor, nil) {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	// 2. Читаем план из файла или stdin
	var raw []byte
	if flag.NArg() > 0 {
		raw, err = os.ReadFile(flag.Arg(0))
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}

	// 3. Parse + Validate — ровно то, что делает планировщик
	p, err := plan.Parse(string(raw))
	if err != nil {
		return err
	}
	if err := p.Validate(registry); err != nil {
		return err
	}

	fmt.Printf("✅ Plan is valid: %d steps\n", len(p.Steps))
	for i, step := range p.Steps {
		fmt.Printf("  %d. %s", i+1, step.Tool)
		if step.Note != "" {
			fmt.Printf(" — %s", step.Note)
		}
		fmt.Println()
	}
	return nil
}
