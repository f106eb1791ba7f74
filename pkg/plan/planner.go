package plan

import (
	"context"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/llm"
	"github.com/ilkoid/poryadok-ai/pkg/prompts"
	"github.com/ilkoid/poryadok-ai/pkg/tools"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Planner строит план операций через LLM.
type Planner struct {
	provider llm.Provider
	registry *tools.Registry
}

// NewPlanner создаёт планировщик.
func NewPlanner(provider llm.Provider, registry *tools.Registry) *Planner {
	return &Planner{provider: provider, registry: registry}
}

// BuildPlan просит модель составить план и валидирует его против реестра.
//
// Модель получает каталог операций (ExportCatalog) и папки задачи,
// отвечает JSON объектом. Невалидный план — ошибка, не выполнение
// "лучшей попытки".
func (p *Planner) BuildPlan(ctx context.Context, inputFolder, outputFolder string) (Plan, error) {
	catalog, err := p.registry.ExportCatalog()
	if err != nil {
		return Plan{}, err
	}

	response, err := p.provider.Chat(ctx, llm.ChatRequest{
		Format: llm.FormatJSON,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.SystemPlanner},
			{Role: llm.RoleUser, Content: prompts.RenderPlannerTask(inputFolder, outputFolder, catalog)},
		},
	})
	if err != nil {
		return Plan{}, fmt.Errorf("planner llm call failed: %w", err)
	}

	parsed, err := Parse(response)
	if err != nil {
		return Plan{}, err
	}

	if err := parsed.Validate(p.registry); err != nil {
		return Plan{}, fmt.Errorf("plan validation failed: %w", err)
	}

	utils.Info("plan built", "steps", len(parsed.Steps))
	return parsed, nil
}

// OutlineSubTasks просит модель разбить задачу на под-задачи простым текстом.
//
// Вспомогательный режим без каталога операций — полезен для отладки
// промптов и как человекочитаемое описание того, что будет сделано.
func (p *Planner) OutlineSubTasks(ctx context.Context) (string, error) {
	response, err := p.provider.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompts.SystemSubTasks},
			{Role: llm.RoleUser, Content: prompts.RenderSubTasksPrompt()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("subtask llm call failed: %w", err)
	}
	return response, nil
}
