// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Планировщику нужна только текстовая генерация с опциональным JSON
// форматом ответа, поэтому клиент сознательно минимальный.
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ilkoid/poryadok-ai/pkg/config"
	"github.com/ilkoid/poryadok-ai/pkg/llm"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
type Client struct {
	api      *openai.Client
	modelDef config.ModelDef
}

// NewClient создает клиент на основе конфигурации модели.
//
// BaseURL позволяет ходить в non-OpenAI провайдеры (Zai, DeepSeek и т.д.).
func NewClient(modelDef config.ModelDef) *Client {
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	return &Client{
		api:      openai.NewClientWithConfig(cfg),
		modelDef: modelDef,
	}
}

// Chat выполняет запрос к API и возвращает текст ответа.
//
// Параметры генерации берутся из запроса, нулевые — из конфигурации модели.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	startTime := time.Now()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.modelDef.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.modelDef.MaxTokens
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       c.modelDef.ModelName,
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
		Messages:    mapMessages(req.Messages),
	}
	if req.Format == llm.FormatJSON {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	utils.Debug("LLM request started",
		"model", c.modelDef.ModelName,
		"messages_count", len(req.Messages),
		"format", req.Format)

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.modelDef.ModelName,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content

	utils.Info("LLM response received",
		"model", c.modelDef.ModelName,
		"content_length", len(content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return content, nil
}

// mapMessages конвертирует внутренние сообщения в формат SDK.
func mapMessages(messages []llm.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}
	return result
}
