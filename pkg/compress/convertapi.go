package compress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/ilkoid/poryadok-ai/pkg/config"
)

// ConvertAPIStrategy сжимает документы через внешний конвертер.
//
// Протокол: POST JSON с base64 содержимым файла, Bearer авторизация.
// Успех — HTTP 200 и тело с массивом Files, где Files[0].FileData
// содержит base64 результата.
type ConvertAPIStrategy struct {
	url        string
	apiKey     string
	httpClient HTTPClient
	limiter    *rate.Limiter
}

// NewConvertAPIStrategy создаёт стратегию из конфигурации.
func NewConvertAPIStrategy(cfg *config.AppConfig) *ConvertAPIStrategy {
	remote := cfg.Remote.GetDefaults()
	return &ConvertAPIStrategy{
		url:        cfg.ConvertAPIURL,
		apiKey:     cfg.ConvertAPIKey,
		httpClient: &http.Client{Timeout: cfg.Remote.TimeoutDuration()},
		limiter:    rate.NewLimiter(rate.Limit(float64(remote.RateLimit)/60.0), remote.Burst),
	}
}

// SetHTTPClient подменяет HTTP клиент (для тестов).
func (s *ConvertAPIStrategy) SetHTTPClient(c HTTPClient) {
	s.httpClient = c
}

// Name возвращает имя стратегии.
func (s *ConvertAPIStrategy) Name() string { return "convertapi" }

// convertRequest — тело запроса к конвертеру.
type convertRequest struct {
	Parameters []convertParameter `json:"Parameters"`
}

type convertParameter struct {
	Name      string       `json:"Name"`
	FileValue convertValue `json:"FileValue"`
}

type convertValue struct {
	Name string `json:"Name"`
	Data string `json:"Data"`
}

// convertResponse — тело ответа конвертера.
type convertResponse struct {
	Files []struct {
		FileName string `json:"FileName"`
		FileData string `json:"FileData"`
	} `json:"Files"`
}

// Compress конвертирует файл через внешний сервис и пишет первый
// файл результата в destPath.
func (s *ConvertAPIStrategy) Compress(ctx context.Context, sourcePath, destPath string) error {
	if s.url == "" {
		return fmt.Errorf("convertapi url is not configured")
	}
	if s.apiKey == "" {
		return fmt.Errorf("convertapi api key is not set")
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	payload := convertRequest{
		Parameters: []convertParameter{{
			Name: "File",
			FileValue: convertValue{
				Name: filepath.Base(sourcePath),
				Data: base64.StdEncoding.EncodeToString(content),
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("convertapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("convertapi returned status %d: %s", resp.StatusCode, string(snippet))
	}

	var parsed convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("malformed convertapi response: %w", err)
	}
	if len(parsed.Files) == 0 {
		return fmt.Errorf("convertapi response contains no files")
	}

	decoded, err := base64.StdEncoding.DecodeString(parsed.Files[0].FileData)
	if err != nil {
		return fmt.Errorf("decode result file: %w", err)
	}

	if err := os.WriteFile(destPath, decoded, 0644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
