package agent

import (
	"context"
	"fmt"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
)

// plannerSystemPrompt is the system prompt for plan mode.
const plannerSystemPrompt = `You are a browser automation planner for an attendance management portal. Given a task, describe the exact browsing steps an automated browser would take to complete it.

Your output must be a numbered list of steps. Each step names one action (navigate, click, type, wait, read) and the element or URL it applies to.

Focus on:
1. Reaching the login page and signing in
2. Navigating to the attendance records
3. Verifying the displayed user name
4. Reporting the attendance status that should be read back`

// PlanAgent asks the model for a browsing plan instead of driving a browser.
type PlanAgent struct {
	task   string
	client llm.Client
	logger logger.Logger
}

// NewPlanAgent creates a PlanAgent.
func NewPlanAgent(task string, client llm.Client, log logger.Logger) *PlanAgent {
	return &PlanAgent{
		task:   task,
		client: client,
		logger: log,
	}
}

// Run sends the task to the model and returns its plan.
func (a *PlanAgent) Run(ctx context.Context) (*Result, error) {
	if a.client == nil {
		return nil, fmt.Errorf("plan agent requires an llm client")
	}
	a.logger.Debug(ctx, "requesting browsing plan", map[string]interface{}{
		"provider": a.client.Provider(),
		"model":    a.client.Model(),
	})

	plan, err := a.client.Generate(ctx, plannerSystemPrompt, a.task)
	if err != nil {
		return nil, fmt.Errorf("planner failed: %w", err)
	}
	return &Result{FinalResult: SanitizeResult(plan), Success: true}, nil
}
