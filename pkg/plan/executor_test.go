package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ilkoid/poryadok-ai/pkg/tools"
)

// recordingTool помнит порядок вызовов; может падать или зависать.
type recordingTool struct {
	name  string
	calls *[]string
	fail  bool
	delay time.Duration
}

func (r *recordingTool) Definition() tools.ToolDefinition {
	return tools.ToolDefinition{
		Name:        r.name,
		Description: "records calls",
		Parameters: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	}
}

func (r *recordingTool) Execute(ctx context.Context, argsJSON string) (string, error) {
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	*r.calls = append(*r.calls, r.name)
	if r.fail {
		return "", fmt.Errorf("tool %s failed", r.name)
	}
	return `{"success": true}`, nil
}

func mustPlan(t *testing.T, toolNames ...string) Plan {
	t.Helper()
	steps := make([]Step, 0, len(toolNames))
	for _, name := range toolNames {
		steps = append(steps, Step{Tool: name, Args: json.RawMessage(`{}`)})
	}
	return Plan{Steps: steps}
}

func TestExecutorRunsStepsInOrder(t *testing.T) {
	var calls []string
	registry := tools.NewRegistry()
	for _, name := range []string{"first", "second", "third"} {
		if err := registry.Register(&recordingTool{name: name, calls: &calls}); err != nil {
			t.Fatalf("Failed to register %s: %v", name, err)
		}
	}

	var observed []string
	executor := NewExecutor(registry)
	executor.SetObserver(func(i int, r StepResult) {
		observed = append(observed, r.Tool)
	})

	results, err := executor.Execute(context.Background(), mustPlan(t, "first", "second", "third"))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(calls) != len(want) {
		t.Fatalf("Calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("Call order[%d] = %q, want %q", i, calls[i], want[i])
		}
	}

	if len(results) != 3 {
		t.Fatalf("Execute() returned %d results, want 3", len(results))
	}
	for _, r := range results {
		if !r.Success {
			t.Errorf("Step %s: Success = false", r.Tool)
		}
	}

	if len(observed) != 3 {
		t.Errorf("Observer saw %d steps, want 3", len(observed))
	}
}

func TestExecutorStopsOnFirstFailure(t *testing.T) {
	var calls []string
	registry := tools.NewRegistry()
	if err := registry.Register(&recordingTool{name: "ok_step", calls: &calls}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(&recordingTool{name: "bad_step", calls: &calls, fail: true}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := registry.Register(&recordingTool{name: "never_step", calls: &calls}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	executor := NewExecutor(registry)
	results, err := executor.Execute(context.Background(), mustPlan(t, "ok_step", "bad_step", "never_step"))
	if err == nil {
		t.Fatal("Execute() error = nil, want step failure")
	}

	// Упавший шаг включён в результаты, следующий не выполнялся
	if len(results) != 2 {
		t.Fatalf("Execute() returned %d results, want 2", len(results))
	}
	if results[0].Tool != "ok_step" || !results[0].Success {
		t.Errorf("First result = %+v, want successful ok_step", results[0])
	}
	if results[1].Tool != "bad_step" || results[1].Success {
		t.Errorf("Second result = %+v, want failed bad_step", results[1])
	}

	for _, call := range calls {
		if call == "never_step" {
			t.Error("never_step was executed after a failure")
		}
	}
}

func TestExecutorStepTimeout(t *testing.T) {
	var calls []string
	registry := tools.NewRegistry()
	if err := registry.Register(&recordingTool{name: "slow_step", calls: &calls, delay: 5 * time.Second}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	executor := NewExecutor(registry)
	executor.SetStepTimeout(50 * time.Millisecond)

	start := time.Now()
	results, err := executor.Execute(context.Background(), mustPlan(t, "slow_step"))
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Execute() error = nil, want timeout")
	}
	if elapsed > 2*time.Second {
		t.Errorf("Execute() took %v, timeout did not fire", elapsed)
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("Results = %+v, want single failed step", results)
	}
}

func TestExecutorRejectsInvalidPlan(t *testing.T) {
	registry := tools.NewRegistry()
	executor := NewExecutor(registry)

	if _, err := executor.Execute(context.Background(), mustPlan(t, "unregistered")); err == nil {
		t.Fatal("Execute() error = nil for plan with unregistered tool")
	}
}
