// Package config загружает и валидирует YAML конфигурацию приложения.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Имена стратегий сжатия, допустимые в секции compression_method.
const (
	StrategyZip        = "zip"        // локальный zip архив
	StrategyTinyPNG    = "tinypng"    // внешний оптимизатор изображений
	StrategyConvertAPI = "convertapi" // внешний конвертер документов
)

// AppConfig — корневая структура конфигурации.
// Зеркалит структуру config.yaml. После Load структура read-only:
// компоненты получают *AppConfig и никогда его не мутируют.
type AppConfig struct {
	FileTypes         []string            `yaml:"file_types"`         // Распознаваемые типы (PDF, JPG, ...)
	CompressionMethod []map[string]string `yaml:"compression_method"` // Упорядоченный список {TYPE: strategy}
	ConvertAPIURL     string              `yaml:"convertapi_url"`
	ConvertAPIKey     string              `yaml:"convertapi_key"` // Поддерживает ${VAR}
	TinyPNGURL        string              `yaml:"tinypng_url"`
	TinyPNGKey        string              `yaml:"tinypng_key"` // Поддерживает ${VAR}

	Paths           PathsConfig     `yaml:"paths"`
	ImageProcessing ImageProcConfig `yaml:"image_processing"`
	Remote          RemoteConfig    `yaml:"remote"`
	S3              S3Config        `yaml:"s3"`
	Models          ModelsConfig    `yaml:"models"`
	Journal         JournalConfig   `yaml:"journal"`
	App             AppSpecific     `yaml:"app"`
}

// PathsConfig — входная и выходная папки пайплайна.
type PathsConfig struct {
	InputFolder  string `yaml:"input_folder"`
	OutputFolder string `yaml:"output_folder"`
}

// ImageProcConfig — локальная предобработка изображений перед отправкой
// во внешний оптимизатор. max_width: 0 выключает ресайз.
type ImageProcConfig struct {
	MaxWidth int `yaml:"max_width"`
	Quality  int `yaml:"quality"`
}

// RemoteConfig — общие настройки внешних HTTP сервисов сжатия.
type RemoteConfig struct {
	Timeout   string `yaml:"timeout"`    // Например "60s"
	RateLimit int    `yaml:"rate_limit"` // Запросов в минуту
	Burst     int    `yaml:"burst"`
}

// TimeoutDuration парсит Timeout, с дефолтом 60s.
func (r RemoteConfig) TimeoutDuration() time.Duration {
	if r.Timeout == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GetDefaults возвращает копию с заполненными дефолтами.
func (r RemoteConfig) GetDefaults() RemoteConfig {
	result := r
	if result.RateLimit == 0 {
		result.RateLimit = 60 // запросов в минуту
	}
	if result.Burst == 0 {
		result.Burst = 3
	}
	return result
}

// S3Config — опциональная выгрузка артефактов в объектное хранилище.
type S3Config struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// ModelsConfig — настройки AI моделей для планировщика.
type ModelsConfig struct {
	DefaultChat string              `yaml:"default_chat"` // Алиас модели по умолчанию
	Definitions map[string]ModelDef `yaml:"definitions"`
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "zai", "openai", "deepseek"
	ModelName   string  `yaml:"model_name"` // Реальное имя в API
	APIKey      string  `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// JournalConfig — SQLite журнал запусков.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
//
// Отсутствие файла конфигурации — фатальная ошибка настройки, а не
// per-file ошибка: без списка типов пайплайну нечего делать.
func Load(path string) (*AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из окружения.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля и логирует подозрительные места.
func (c *AppConfig) validate() error {
	if len(c.FileTypes) == 0 {
		return fmt.Errorf("file_types is required")
	}

	known := make(map[string]bool, len(c.FileTypes))
	for _, t := range c.FileTypes {
		known[t] = true
	}

	seen := make(map[string]bool)
	needConvertAPI := false
	for _, entry := range c.CompressionMethod {
		for tag, strategy := range entry {
			if seen[tag] {
				// Первая запись выигрывает; дубликат почти наверняка опечатка
				utils.Warn("duplicate compression_method entry, first match wins", "type", tag)
			}
			seen[tag] = true

			if !known[tag] {
				utils.Warn("compression_method references unknown file type", "type", tag)
			}

			switch strategy {
			case StrategyZip, StrategyTinyPNG:
			case StrategyConvertAPI:
				needConvertAPI = true
			default:
				return fmt.Errorf("unknown compression strategy '%s' for type '%s'", strategy, tag)
			}
		}
	}

	if needConvertAPI && c.ConvertAPIURL == "" {
		return fmt.Errorf("convertapi_url is required when a type uses the convertapi strategy")
	}

	if c.Models.DefaultChat != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
			return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
		}
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3 is enabled")
		}
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint is required when s3 is enabled")
		}
	}

	return nil
}

// StrategyFor возвращает стратегию сжатия для типа файла.
//
// compression_method — упорядоченный список single-entry маппингов,
// выигрывает первое совпадение. Пустая строка и false — стратегия не настроена.
func (c *AppConfig) StrategyFor(typeTag string) (string, bool) {
	for _, entry := range c.CompressionMethod {
		if strategy, ok := entry[typeTag]; ok {
			return strategy, true
		}
	}
	return "", false
}

// GetChatModel возвращает конфигурацию модели по имени или дефолтную.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
