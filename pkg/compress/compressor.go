package compress

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Compressor выбирает стратегию по типу файла и запускает сжатие.
//
// Имя результата: <имя>_compressed.<расширение в нижнем регистре>,
// рядом с исходным файлом.
type Compressor struct {
	cfg        *config.AppConfig
	strategies map[string]Strategy
}

// NewCompressor создаёт Compressor со стандартным набором стратегий.
func NewCompressor(cfg *config.AppConfig) *Compressor {
	return &Compressor{
		cfg: cfg,
		strategies: map[string]Strategy{
			config.StrategyZip:        NewZipStrategy(),
			config.StrategyTinyPNG:    NewTinyPNGStrategy(cfg),
			config.StrategyConvertAPI: NewConvertAPIStrategy(cfg),
		},
	}
}

// RegisterStrategy заменяет или добавляет стратегию. Вызывать до Compress.
func (c *Compressor) RegisterStrategy(name string, s Strategy) {
	c.strategies[name] = s
}

// Compress сжимает файл стратегией, привязанной к его типу.
//
// Сценарии отказа (все дают ("", false), ничего не пробрасывается выше):
//   - файл не существует
//   - тип не определяется или не имеет настроенной стратегии
//   - сбой стратегии: ошибка I/O, недоступный сервис, не-200 статус,
//     кривой ответ
//
// Паника внутри стратегии перехватывается и тоже превращается в отказ:
// одна взбесившаяся стратегия не должна ронять обработку всей папки.
func (c *Compressor) Compress(ctx context.Context, filePath string) (result organizer.CompressionResult) {
	defer func() {
		if r := recover(); r != nil {
			utils.Error("panic during compression", "file", filePath, "panic", r)
			result = organizer.CompressionResult{}
		}
	}()

	if filePath == "" {
		return organizer.CompressionResult{}
	}
	if _, err := os.Stat(filePath); err != nil {
		return organizer.CompressionResult{}
	}

	typeTag, recognized := organizer.Classify(filepath.Base(filePath))
	if !recognized {
		return organizer.CompressionResult{}
	}

	strategyName, configured := c.cfg.StrategyFor(typeTag)
	if !configured {
		utils.Info("no compression strategy configured", "file", filePath, "type", typeTag)
		return organizer.CompressionResult{}
	}

	strategy, ok := c.strategies[strategyName]
	if !ok {
		utils.Warn("unknown compression strategy", "strategy", strategyName, "type", typeTag)
		return organizer.CompressionResult{}
	}

	destPath := compressedPath(filePath, typeTag)

	if err := strategy.Compress(ctx, filePath, destPath); err != nil {
		utils.Warn("compression failed", "file", filePath, "strategy", strategy.Name(), "error", err)
		return organizer.CompressionResult{}
	}

	utils.Info("file compressed", "file", filePath, "strategy", strategy.Name(), "output", destPath)
	return organizer.CompressionResult{CompressedPath: destPath, OK: true}
}

// compressedPath строит путь результата: <dir>/<name>_compressed.<ext>.
func compressedPath(filePath, typeTag string) string {
	base := filepath.Base(filePath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(filePath), fmt.Sprintf("%s_compressed.%s", name, strings.ToLower(typeTag)))
}
