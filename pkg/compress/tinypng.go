package compress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/time/rate"

	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// defaultTinyPNGURL — endpoint оптимизатора по умолчанию.
const defaultTinyPNGURL = "https://api.tinify.com/shrink"

// TinyPNGStrategy сжимает изображения через внешний оптимизатор.
//
// Протокол: POST сырых байт изображения с Basic-auth ("api", ключ);
// сервис отвечает 201 с JSON, содержащим URL оптимизированного файла,
// который скачивается вторым запросом.
//
// Перед отправкой изображение опционально уменьшается локально
// (image_processing.max_width в конфиге) — нет смысла гонять по сети
// мегапиксели, которые всё равно никому не нужны.
type TinyPNGStrategy struct {
	url        string
	apiKey     string
	maxWidth   int
	quality    int
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// NewTinyPNGStrategy создаёт стратегию из конфигурации.
func NewTinyPNGStrategy(cfg *config.AppConfig) *TinyPNGStrategy {
	url := cfg.TinyPNGURL
	if url == "" {
		url = defaultTinyPNGURL
	}

	remote := cfg.Remote.GetDefaults()
	return &TinyPNGStrategy{
		url:        url,
		apiKey:     cfg.TinyPNGKey,
		maxWidth:   cfg.ImageProcessing.MaxWidth,
		quality:    cfg.ImageProcessing.Quality,
		httpClient: &http.Client{Timeout: cfg.Remote.TimeoutDuration()},
		limiter:    rate.NewLimiter(rate.Limit(float64(remote.RateLimit)/60.0), remote.Burst),
	}
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (s *TinyPNGStrategy) SetHTTPClient(c HTTPClient) {
	s.httpClient = c
}

// Name возвращает имя стратегии.
func (s *TinyPNGStrategy) Name() string { return "tinypng" }

// shrinkResponse — ответ сервиса на запрос оптимизации.
type shrinkResponse struct {
	Output struct {
		URL  string `json:"url"`
		Size int64  `json:"size"`
	} `json:"output"`
}

// Compress отправляет файл оптимизатору и пишет результат в destPath.
//
// Пустой API ключ трактуется как сервисная ошибка — стратегия выбрана,
// но пользоваться ей нельзя.
func (s *TinyPNGStrategy) Compress(ctx context.Context, sourcePath, destPath string) error {
	if s.apiKey == "" {
		return fmt.Errorf("tinypng api key is not set")
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	if s.maxWidth > 0 {
		resized, err := utils.ResizeImage(data, s.maxWidth, s.quality)
		if err != nil {
			// Предобработка best-effort: шлём оригинал
			utils.Warn("image pre-resize failed, sending original", "file", sourcePath, "error", err)
		} else {
			data = resized
		}
	}

	shrunk, err := s.shrink(ctx, data)
	if err != nil {
		return err
	}

	optimized, err := s.download(ctx, shrunk.Output.URL)
	if err != nil {
		return err
	}

	if err := os.WriteFile(destPath, optimized, 0644); err != nil {
		return fmt.Errorf("write optimized file: %w", err)
	}
	return nil
}

// shrink отправляет байты изображения на оптимизацию.
func (s *TinyPNGStrategy) shrink(ctx context.Context, data []byte) (*shrinkResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tinypng request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tinypng returned status %d: %s", resp.StatusCode, string(body))
	}

	var shrunk shrinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&shrunk); err != nil {
		return nil, fmt.Errorf("malformed tinypng response: %w", err)
	}
	if shrunk.Output.URL == "" {
		return nil, fmt.Errorf("tinypng response has no output url")
	}
	return &shrunk, nil
}

// download скачивает оптимизированный файл.
func (s *TinyPNGStrategy) download(ctx context.Context, url string) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth("api", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tinypng download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tinypng download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
