package organizer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Stage — стадия пайплайна для событий прогресса.
type Stage string

const (
	StageClassify Stage = "classify"
	StagePlace    Stage = "place"
	StageCompress Stage = "compress"
)

// Event — событие прогресса одной стадии одного файла.
type Event struct {
	File   string
	Stage  Stage
	OK     bool
	Detail string
}

// FileReport — итог обработки одного файла.
type FileReport struct {
	Name        string            `json:"name"`
	TypeTag     string            `json:"type_tag"`
	Recognized  bool              `json:"recognized"`
	Placement   PlacementResult   `json:"placement"`
	Compression CompressionResult `json:"compression"`
}

// Pipeline последовательно прогоняет файлы входной папки через
// classify → place → compress. Один файл за раз, без параллелизма:
// внешние сервисы сжатия и так являются бутылочным горлышком.
type Pipeline struct {
	cfg        *config.AppConfig
	placer     *Placer
	compressor Compressor
	observer   func(Event) // опционально, для TUI/журнала
}

// NewPipeline собирает пайплайн из готовых компонентов.
func NewPipeline(cfg *config.AppConfig, placer *Placer, compressor Compressor) *Pipeline {
	return &Pipeline{cfg: cfg, placer: placer, compressor: compressor}
}

// SetObserver устанавливает наблюдателя стадий. Вызывать до Run.
func (p *Pipeline) SetObserver(fn func(Event)) {
	p.observer = fn
}

// Run обрабатывает все файлы inputFolder и возвращает отчёт по каждому.
//
// Ошибка возвращается только если входной папки нет или контекст отменён.
// Сбой отдельного файла на любой стадии не прерывает остальные: файл
// получает отчёт с соответствующим false-флагом, пайплайн идёт дальше.
func (p *Pipeline) Run(ctx context.Context, inputFolder, outputFolder string) ([]FileReport, error) {
	names, exists := Scan(inputFolder)
	if !exists {
		return nil, fmt.Errorf("input folder does not exist: %s", inputFolder)
	}

	reports := make([]FileReport, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		report := p.processFile(ctx, inputFolder, outputFolder, name)
		reports = append(reports, report)
	}
	return reports, nil
}

// processFile прогоняет один файл через все стадии.
func (p *Pipeline) processFile(ctx context.Context, inputFolder, outputFolder, name string) FileReport {
	report := FileReport{Name: name}
	sourcePath := filepath.Join(inputFolder, name)

	// 1. Классификация
	report.TypeTag, report.Recognized = Classify(name)
	p.emit(Event{File: name, Stage: StageClassify, OK: report.Recognized, Detail: report.TypeTag})
	if !report.Recognized {
		utils.Info("skipping file without recognizable type", "file", name)
		return report
	}

	if _, configured := p.cfg.StrategyFor(report.TypeTag); !configured {
		// Тип вне configured set — не трогаем файл вообще
		utils.Info("skipping file of unconfigured type", "file", name, "type", report.TypeTag)
		report.Recognized = false
		return report
	}

	// 2. Перенос
	report.Placement = p.placer.Place(sourcePath, outputFolder, report.TypeTag)
	p.emit(Event{File: name, Stage: StagePlace, OK: report.Placement.OK, Detail: report.Placement.NewPath})
	if !report.Placement.OK {
		return report
	}

	// 3. Сжатие
	report.Compression = p.compressor.Compress(ctx, report.Placement.NewPath)
	p.emit(Event{File: name, Stage: StageCompress, OK: report.Compression.OK, Detail: report.Compression.CompressedPath})
	return report
}

func (p *Pipeline) emit(ev Event) {
	if p.observer != nil {
		p.observer(ev)
	}
}
