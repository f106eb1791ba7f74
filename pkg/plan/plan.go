// Package plan реализует структурированный план операций.
//
// План — это данные, а не код: последовательность пар (имя операции,
// JSON аргументы), которую строит LLM и валидирует реестр инструментов.
// Выполняется только то, что прошло валидацию; операция вне реестра
// отвергает весь план целиком.
package plan

import (
	"encoding/json"
	"fmt"

	"github.com/ilkoid/poryadok-ai/pkg/tools"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// Step — один шаг плана: вызов инструмента с аргументами.
type Step struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args,omitempty"`
	Note string          `json:"note,omitempty"` // короткое обоснование шага от планировщика
}

// Plan — упорядоченная последовательность шагов.
type Plan struct {
	Steps []Step `json:"steps"`
}

// Parse разбирает план из текстового ответа LLM.
//
// Ответ может быть обёрнут в markdown кодовый блок — обёртка снимается.
func Parse(response string) (Plan, error) {
	cleaned := utils.CleanJsonBlock(response)

	var p Plan
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan json: %w", err)
	}
	return p, nil
}

// Validate проверяет план против реестра инструментов.
//
// Отвергает пустой план, шаги без имени инструмента, имена вне реестра
// и аргументы, не являющиеся JSON объектом. Ошибка в любом шаге
// инвалидирует весь план — частично валидные планы не выполняются.
func (p Plan) Validate(registry *tools.Registry) error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan contains no steps")
	}

	for i, step := range p.Steps {
		if step.Tool == "" {
			return fmt.Errorf("step %d: tool name is empty", i+1)
		}
		if !registry.Has(step.Tool) {
			return fmt.Errorf("step %d: tool '%s' is not in the registry", i+1, step.Tool)
		}
		if len(step.Args) > 0 {
			var obj map[string]interface{}
			if err := json.Unmarshal(step.Args, &obj); err != nil {
				return fmt.Errorf("step %d (%s): args must be a JSON object: %w", i+1, step.Tool, err)
			}
		}
	}
	return nil
}
