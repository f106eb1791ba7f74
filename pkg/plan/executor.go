package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/ilkoid/poryadok-ai/pkg/tools"
	"github.com/ilkoid/poryadok-ai/pkg/utils"
)

// defaultStepTimeout — защитный timeout одного шага.
// Внешние сервисы сжатия могут отвечать долго, но не бесконечно.
const defaultStepTimeout = 2 * time.Minute

// StepResult — результат выполнения одного шага плана.
type StepResult struct {
	Tool     string `json:"tool"`
	Args     string `json:"args"`
	Result   string `json:"result"`
	Duration int64  `json:"duration_ms"`
	Success  bool   `json:"success"`
	Error    error  `json:"-"`
}

// Executor последовательно выполняет валидированный план.
//
// Шаги выполняются строго по порядку, один за другим. Первый сбой
// останавливает выполнение: оставшиеся шаги почти наверняка зависят
// от результата упавшего.
type Executor struct {
	registry    *tools.Registry
	stepTimeout time.Duration
	observer    func(index int, result StepResult) // опционально, для TUI/журнала
}

// NewExecutor создаёт исполнитель плана.
func NewExecutor(registry *tools.Registry) *Executor {
	return &Executor{
		registry:    registry,
		stepTimeout: defaultStepTimeout,
	}
}

// SetStepTimeout переопределяет timeout шага. Вызывать до Execute.
func (e *Executor) SetStepTimeout(d time.Duration) {
	e.stepTimeout = d
}

// SetObserver устанавливает наблюдателя шагов. Вызывать до Execute.
func (e *Executor) SetObserver(fn func(index int, result StepResult)) {
	e.observer = fn
}

// Execute выполняет план и возвращает результаты всех выполненных шагов.
//
// План обязан быть валидирован заранее; на всякий случай Execute
// валидирует повторно — выполнение невалидного плана хуже лишней проверки.
// При сбое шага возвращаются результаты до него включительно и ошибка.
func (e *Executor) Execute(ctx context.Context, p Plan) ([]StepResult, error) {
	if err := p.Validate(e.registry); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(p.Steps))
	for i, step := range p.Steps {
		result := e.executeStep(ctx, step)
		results = append(results, result)

		if e.observer != nil {
			e.observer(i, result)
		}

		if !result.Success {
			return results, fmt.Errorf("step %d (%s) failed: %w", i+1, step.Tool, result.Error)
		}
	}
	return results, nil
}

// executeStep выполняет один шаг с защитным timeout.
//
// Инструмент запускается в отдельной goroutine, чтобы зависший шаг
// можно было отменить, не блокируя исполнитель.
func (e *Executor) executeStep(ctx context.Context, step Step) StepResult {
	start := time.Now()
	result := StepResult{Tool: step.Tool, Args: string(step.Args)}

	argsJSON := string(step.Args)
	if argsJSON == "" {
		argsJSON = "{}"
	}

	tool, err := e.registry.Get(step.Tool)
	if err != nil {
		result.Error = err
		result.Result = fmt.Sprintf("Error: tool not found: %s", step.Tool)
		result.Duration = time.Since(start).Milliseconds()
		return result
	}

	stepCtx, cancel := context.WithTimeout(ctx, e.stepTimeout)
	defer cancel()

	type execResult struct {
		output string
		err    error
	}
	resultChan := make(chan execResult, 1)

	go func() {
		output, execErr := tool.Execute(stepCtx, argsJSON)
		resultChan <- execResult{output, execErr}
	}()

	select {
	case <-stepCtx.Done():
		result.Duration = time.Since(start).Milliseconds()
		if stepCtx.Err() == context.DeadlineExceeded {
			result.Error = fmt.Errorf("step timeout after %v", e.stepTimeout)
			result.Result = fmt.Sprintf("Tool %q exceeded timeout of %v", step.Tool, e.stepTimeout)
		} else {
			result.Error = fmt.Errorf("step cancelled: %w", stepCtx.Err())
			result.Result = "Step execution was cancelled"
		}
		utils.Warn("plan step timeout", "tool", step.Tool, "duration_ms", result.Duration)
		return result

	case res := <-resultChan:
		result.Duration = time.Since(start).Milliseconds()
		if res.err != nil {
			result.Error = res.err
			result.Result = fmt.Sprintf("Error: %v", res.err)
		} else {
			result.Success = true
			result.Result = res.output
		}

		utils.Debug("plan step executed",
			"tool", step.Tool,
			"success", result.Success,
			"duration_ms", result.Duration)
		return result
	}
}
