// compress-util — CLI утилита для сжатия одного файла.
//
// Полезна для проверки ключей внешних сервисов и настроек
// compression_method без прогона всего пайплайна.
//
// Использование:
//   compress-util [-config config.yaml] path/to/file.pdf
//
// Переменные окружения:
//   TINYPNG_API_KEY     - ключ TinyPNG
//   CONVERTAPI_API_KEY  - ключ ConvertAPI
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilkoid/poryadok-ai/pkg/compress"
	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/organizer"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: compress-util [-config config.yaml] FILE")
		os.Exit(1)
	}
	filePath := flag.Arg(0)

	// 1. Логгер и конфигурация
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logger: %v\n", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// 2. Показываем, какая стратегия будет использована
	typeTag, ok := organizer.Classify(filePath)
	if !ok {
		fmt.Fprintf(os.Stderr, "❌ Cannot determine file type: %s\n", filePath)
		os.Exit(1)
	}
	strategy, ok := cfg.StrategyFor(typeTag)
	if !ok {
		fmt.Fprintf(os.Stderr, "❌ No compression strategy configured for type %s\n", typeTag)
		os.Exit(1)
	}
	fmt.Printf("🔍 Type: %s, strategy: %s\n", typeTag, strategy)

	// 3. Сжимаем
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	result := compress.NewCompressor(cfg).Compress(ctx, filePath)
	if !result.OK {
		fmt.Fprintf(os.Stderr, "❌ Compression failed (see log for details)\n")
		os.Exit(1)
	}

	fmt.Printf("✅ Compressed in %s: %s\n", time.Since(start).Round(time.Millisecond), result.CompressedPath)
}
