// poryadok — утилита раскладки и сжатия файлов.
//
// Использование:
//   poryadok organize [-config config.yaml] [-in DIR] [-out DIR] [-tui]
//   poryadok plan     [-config config.yaml] [-model ALIAS] [-subtasks]
//   poryadok agent    [-config config.yaml] [-model ALIAS]
//   poryadok tools    [-config config.yaml]
//
// Переменные окружения (подставляются в config.yaml через ${VAR}):
//   TINYPNG_API_KEY     - ключ TinyPNG
//   CONVERTAPI_API_KEY  - ключ ConvertAPI
//   ZAI_API_KEY         - ключ LLM провайдера для планировщика
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilkoid/poryadok-ai/internal/tui"
	"github.com/ilkoid/poryadok-ai/pkg/compress"
	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/factory"
	"github.com/ilkoid/poryadok-ai/pkg/journal"
	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/plan"
	"github.com/ilkoid/poryadok-ai/pkg/s3storage"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
	"github.com/ilkoid/poryadok-ai/pkg/tools/std"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Ctrl+C отменяет контекст, пайплайн дорабатывает текущий файл
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "organize":
		err = runOrganize(ctx, os.Args[2:])
	case "plan":
		err = runPlan(ctx, os.Args[2:])
	case "agent":
		err = runAgent(ctx, os.Args[2:])
	case "tools":
		err = runTools(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func usage() {
	fmt.Println("poryadok — file organizing utility")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  organize   run the classify/place/compress pipeline")
	fmt.Println("  plan       build an operation plan via LLM and print it")
	fmt.Println("  agent      build a plan via LLM and execute it")
	fmt.Println("  tools      print the operation catalog")
}

// runOrganize — прямой пайплайн без LLM.
func runOrganize(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("organize", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	inFolder := fs.String("in", "", "input folder (default from config)")
	outFolder := fs.String("out", "", "output folder (default from config)")
	withTUI := fs.Bool("tui", false, "show progress TUI")
	asJSON := fs.Bool("json", false, "print reports as JSON")
	fs.Parse(args)

	// 1. Логгер раньше конфига: валидация конфига пишет WARN через него
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger init failed: %v\n", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	in := *inFolder
	if in == "" {
		in = cfg.Paths.InputFolder
	}
	out := *outFolder
	if out == "" {
		out = cfg.Paths.OutputFolder
	}
	if in == "" || out == "" {
		return fmt.Errorf("input and output folders must be set via flags or config paths section")
	}

	// 2. Сборка пайплайна
	compressor := compress.NewCompressor(cfg)
	placer := organizer.NewPlacer(organizer.NewProvisioner(cfg))
	pipeline := organizer.NewPipeline(cfg, placer, compressor)

	// 3. Журнал (опционально)
	j, runID := openJournal(cfg, "organize", in, out)
	if j != nil {
		defer j.Close()
	}

	seq := 0
	record := func(ev organizer.Event) {
		if j == nil {
			return
		}
		seq++
		name := fmt.Sprintf("%s:%s", ev.Stage, ev.File)
		if err := j.RecordStep(runID, seq, name, ev.Detail, ev.OK, 0); err != nil {
			utils.Warn("journal step write failed", "error", err)
		}
	}

	// 4. Запуск
	var reports []organizer.FileReport
	if *withTUI {
		reports, err = runPipelineWithTUI(ctx, pipeline, in, out, record, tui.Run)
	} else {
		pipeline.SetObserver(record)
		reports, err = pipeline.Run(ctx, in, out)
	}

	ok := err == nil
	if j != nil {
		if ferr := j.FinishRun(runID, ok); ferr != nil {
			utils.Warn("journal finish failed", "error", ferr)
		}
	}
	if err != nil {
		return err
	}

	// 5. Отчёт
	if *asJSON {
		data, merr := json.MarshalIndent(reports, "", "  ")
		if merr != nil {
			return merr
		}
		fmt.Println(string(data))
		return nil
	}
	printReports(reports)
	return nil
}

// runPipelineWithTUI запускает пайплайн в фоне и рисует прогресс.
//
// runUI блокируется до закрытия канала событий или выхода пользователя.
// Ранний выход из TUI отменяет пайплайн: некому больше читать события,
// и без отмены наблюдатель заклинил бы пайплайн на заполненном буфере.
// Результаты читаются только после завершения goroutine пайплайна.
func runPipelineWithTUI(
	ctx context.Context,
	pipeline *organizer.Pipeline,
	in, out string,
	record func(organizer.Event),
	runUI func(<-chan tui.Update) error,
) ([]organizer.FileReport, error) {
	updates := make(chan tui.Update, 16)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Заранее узнаём total: пайплайн просканирует папку ещё раз сам
	names, exists := organizer.Scan(in)
	if exists {
		updates <- tui.Update{TotalDelta: len(names)}
	}

	pipeline.SetObserver(func(ev organizer.Event) {
		record(ev)

		// Файл закончен, если классификация/перенос сорвались
		// или дошли до стадии сжатия
		delta := 0
		switch {
		case ev.Stage == organizer.StageClassify && !ev.OK:
			delta = 1
		case ev.Stage == organizer.StagePlace && !ev.OK:
			delta = 1
		case ev.Stage == organizer.StageCompress:
			delta = 1
		}

		update := tui.Update{
			Line:      fmt.Sprintf("%-8s %s", ev.Stage, ev.File),
			OK:        ev.OK,
			DoneDelta: delta,
		}
		select {
		case updates <- update:
		case <-runCtx.Done():
			// TUI ушёл, прогресс больше некому показывать
		}
	})

	var (
		reports []organizer.FileReport
		runErr  error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(updates)
		reports, runErr = pipeline.Run(runCtx, in, out)
	}()

	uiErr := runUI(updates)

	// Отменяем пайплайн и дожидаемся goroutine: reports и runErr
	// нельзя трогать, пока она жива
	cancel()
	<-done

	if uiErr != nil {
		return reports, uiErr
	}
	return reports, runErr
}

func printReports(reports []organizer.FileReport) {
	placed, compressed, skipped := 0, 0, 0
	for _, r := range reports {
		switch {
		case !r.Recognized:
			skipped++
			fmt.Printf("⏭️  %s (skipped)\n", r.Name)
		case !r.Placement.OK:
			fmt.Printf("❌ %s (move failed)\n", r.Name)
		case !r.Compression.OK:
			placed++
			fmt.Printf("⚠️  %s → %s (compression failed)\n", r.Name, r.Placement.NewPath)
		default:
			placed++
			compressed++
			fmt.Printf("✅ %s → %s\n", r.Name, r.Compression.CompressedPath)
		}
	}
	fmt.Printf("\nTotal: %d, placed: %d, compressed: %d, skipped: %d\n",
		len(reports), placed, compressed, skipped)
}

// runPlan строит план через LLM и печатает его без выполнения.
func runPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	modelAlias := fs.String("model", "", "model alias (default from config)")
	subtasks := fs.Bool("subtasks", false, "outline sub-tasks as plain text instead of a plan")
	fs.Parse(args)

	// Логгер раньше конфига: валидация конфига пишет WARN через него
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger init failed: %v\n", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	planner, _, err := buildPlanner(cfg, *modelAlias)
	if err != nil {
		return err
	}

	if *subtasks {
		text, err := planner.OutlineSubTasks(ctx)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	p, err := planner.BuildPlan(ctx, cfg.Paths.InputFolder, cfg.Paths.OutputFolder)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// runAgent строит план через LLM и сразу выполняет его.
func runAgent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agent", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	modelAlias := fs.String("model", "", "model alias (default from config)")
	fs.Parse(args)

	// Логгер раньше конфига: валидация конфига пишет WARN через него
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger init failed: %v\n", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	planner, registry, err := buildPlanner(cfg, *modelAlias)
	if err != nil {
		return err
	}

	fmt.Println("🤖 Building plan...")
	p, err := planner.BuildPlan(ctx, cfg.Paths.InputFolder, cfg.Paths.OutputFolder)
	if err != nil {
		return err
	}
	fmt.Printf("📋 Plan: %d steps\n\n", len(p.Steps))

	j, runID := openJournal(cfg, "agent", cfg.Paths.InputFolder, cfg.Paths.OutputFolder)
	if j != nil {
		defer j.Close()
	}

	executor := plan.NewExecutor(registry)
	executor.SetObserver(func(i int, r plan.StepResult) {
		mark := "✅"
		if !r.Success {
			mark = "❌"
		}
		fmt.Printf("%s [%d/%d] %s (%dms)\n", mark, i+1, len(p.Steps), r.Tool, r.Duration)
		if j != nil {
			if err := j.RecordStep(runID, i+1, r.Tool, r.Result, r.Success, r.Duration); err != nil {
				utils.Warn("journal step write failed", "error", err)
			}
		}
	})

	_, execErr := executor.Execute(ctx, p)
	if j != nil {
		if ferr := j.FinishRun(runID, execErr == nil); ferr != nil {
			utils.Warn("journal finish failed", "error", ferr)
		}
	}
	if execErr != nil {
		return execErr
	}

	fmt.Println("\nDone.")
	return nil
}

// runTools печатает каталог операций в JSON.
func runTools(args []string) error {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	catalog, err := registry.ExportCatalog()
	if err != nil {
		return err
	}
	fmt.Println(catalog)
	return nil
}

// buildPlanner собирает LLM планировщик поверх реестра операций.
func buildPlanner(cfg *config.AppConfig, modelAlias string) (*plan.Planner, *tools.Registry, error) {
	modelDef, ok := cfg.GetChatModel(modelAlias)
	if !ok {
		return nil, nil, fmt.Errorf("model '%s' is not defined in config", modelAlias)
	}

	provider, err := factory.NewLLMProvider(modelDef)
	if err != nil {
		return nil, nil, err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	return plan.NewPlanner(provider, registry), registry, nil
}

// buildRegistry регистрирует все инструменты файлового менеджера.
func buildRegistry(cfg *config.AppConfig) (*tools.Registry, error) {
	provisioner := organizer.NewProvisioner(cfg)
	placer := organizer.NewPlacer(provisioner)
	compressor := compress.NewCompressor(cfg)

	var s3client s3storage.ClientInterface
	if cfg.S3.Enabled {
		client, err := s3storage.New(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 client: %w", err)
		}
		s3client = client
	}

	registry := tools.NewRegistry()
	for name, tool := range std.NewFileManagerTools(provisioner, placer, compressor, s3client) {
		if err := registry.Register(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", name, err)
		}
	}
	return registry, nil
}

// openJournal открывает журнал запусков, если он включен в конфиге.
// Сбой журнала не прерывает работу.
func openJournal(cfg *config.AppConfig, mode, in, out string) (*journal.Journal, int64) {
	if !cfg.Journal.Enabled {
		return nil, 0
	}
	path := cfg.Journal.Path
	if path == "" {
		path = "poryadok.db"
	}

	j, err := journal.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal disabled: %v\n", err)
		return nil, 0
	}

	runID, err := j.BeginRun(mode, in, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: journal disabled: %v\n", err)
		j.Close()
		return nil, 0
	}
	return j, runID
}
