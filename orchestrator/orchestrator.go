// Package orchestrator drives one attendance check: load configuration,
// select a provider, check the environment, run the agent once and report
// every step as a timestamped line. Failures are returned in the Outcome and
// never escape Run.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hairizuan-noorazman/attendance-agent/agent"
	"github.com/hairizuan-noorazman/attendance-agent/clock"
	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/environ"
	"github.com/hairizuan-noorazman/attendance-agent/internal/uuidutil"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/hairizuan-noorazman/attendance-agent/provider"
	"github.com/hairizuan-noorazman/attendance-agent/task"
)

// ConfigLoader loads the run documents.
type ConfigLoader interface {
	LoadAll(ctx context.Context) (*configstore.Documents, bool)
}

// ProviderSelector chooses the provider for a run.
type ProviderSelector interface {
	Select(ctx context.Context, reg *provider.Registry, env environ.Environment) (*provider.Selected, error)
}

// AgentBuilder returns the agent factory for a configuration. agent.NewFactory
// satisfies it.
type AgentBuilder func(cfg agent.Config, log logger.Logger) (agent.Factory, error)

// Orchestrator runs the attendance check.
type Orchestrator struct {
	config   ConfigLoader
	selector ProviderSelector
	agents   AgentBuilder
	env      environ.Environment
	clock    clock.Clock
	logger   logger.Logger
}

// New creates an orchestrator. A nil builder uses agent.NewFactory and a nil
// clock the system clock.
func New(
	config ConfigLoader,
	selector ProviderSelector,
	agents AgentBuilder,
	env environ.Environment,
	clk clock.Clock,
	log logger.Logger,
) *Orchestrator {
	if agents == nil {
		agents = agent.NewFactory
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &Orchestrator{
		config:   config,
		selector: selector,
		agents:   agents,
		env:      env,
		clock:    clk,
		logger:   log,
	}
}

// run carries the per-invocation state.
type run struct {
	outcome  Outcome
	program  *clock.Timer
	agent    *clock.Timer
	messages *configstore.MessageCatalog
	log      logger.Logger
}

// Run performs one check and returns its outcome. It does not panic and
// never returns an error; the caller decides how a failed outcome maps to an
// exit code.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	id := uuidutil.New().String()
	ctx = logger.ContextWithFields(ctx, map[string]interface{}{"run_id": id})
	r := &run{
		outcome: Outcome{RunID: id, State: StateIdle},
		program: clock.NewTimer(o.clock),
		agent:   clock.NewTimer(o.clock),
		log:     o.logger.WithField("run_id", id),
	}
	r.program.Start()

	r.log.Info(ctx, "program started", nil)

	o.execute(ctx, r)

	r.outcome.Total = r.program.Stop()
	r.log.Info(ctx, "program finished", map[string]interface{}{
		"state": string(r.outcome.State),
	})
	r.log.Info(ctx, "total program time: "+clock.FormatDuration(r.outcome.Total), nil)
	r.log.Info(ctx, strings.Repeat("=", r.messages.SeparatorLength()), nil)
	return r.outcome
}

func (o *Orchestrator) execute(ctx context.Context, r *run) {
	// Idle -> ConfigLoaded
	docs, ok := o.config.LoadAll(ctx)
	if !ok {
		missing := docs.Missing()
		r.log.Error(ctx, "failed to load config files", map[string]interface{}{
			"files": strings.Join(missing, ","),
		})
		o.fail(ctx, r, &Error{Kind: KindConfigMissing, Missing: missing}, "exiting after config load failure")
		return
	}
	r.messages = docs.Messages
	o.transition(ctx, r, StateConfigLoaded)
	o.showHeader(ctx, r)

	// ConfigLoaded -> ProviderReady
	reg := docs.Models.Registry()
	selected, err := o.selector.Select(ctx, reg, o.env)
	if err != nil {
		expected := provider.ExpectedCredentials(reg)
		o.showCredentialError(ctx, r, reg)
		o.fail(ctx, r, &Error{Kind: KindNoEligibleProvider, Missing: expected, Err: err}, "exiting after LLM setup failure")
		return
	}
	r.outcome.Provider = selected.Name
	o.transition(ctx, r, StateProviderReady)

	r.log.Info(ctx, r.messages.Text(configstore.SectionMessages, "start", fallbackStart), nil)
	fields := map[string]interface{}{
		"model":       selected.Descriptor.Model,
		"temperature": selected.Descriptor.Temperature,
	}
	if skipped := selected.Skipped(); len(skipped) > 0 {
		fields["skipped"] = strings.Join(skipped, ", ")
	}
	r.log.Info(ctx, "LLM provider: "+selected.Name, fields)
	browserMode := "visible"
	if docs.Browser.Headless() {
		browserMode = "headless"
	}
	r.log.Info(ctx, "browser mode: "+browserMode, nil)
	r.log.Info(ctx, "prompt template: "+docs.Browser.TemplateName(), nil)

	// ProviderReady -> PreconditionsChecked
	required := task.RequiredVariables(docs.Prompts, docs.Browser)
	if missing := task.MissingVariables(required, o.env); len(missing) > 0 {
		o.showMissingEnvironment(ctx, r, missing)
		o.fail(ctx, r, &Error{Kind: KindMissingEnvironment, Missing: missing}, "exiting after environment check failure")
		return
	}
	o.transition(ctx, r, StatePreconditionsChecked)

	// PreconditionsChecked -> Running -> Completed | Failed
	r.agent.Start()
	o.transition(ctx, r, StateRunning)
	r.log.Info(ctx, "agent run started", nil)

	result, err := o.invokeAgent(ctx, r, docs, selected)
	if err != nil {
		r.outcome.Elapsed = r.agent.Stop()
		o.showAgentFailure(ctx, r, err)
		return
	}

	r.outcome.Elapsed = r.agent.Stop()
	r.outcome.Result = result
	r.log.Info(ctx, r.messages.Text(configstore.SectionMessages, "task_complete", fallbackTaskComplete), nil)
	r.log.Info(ctx, "total run time: "+clock.FormatDuration(r.outcome.Elapsed), nil)
	r.log.Info(ctx, "result: "+result.String(), nil)
	o.transition(ctx, r, StateCompleted)
}

// invokeAgent composes the task, builds the agent and runs it once. Panics
// from the agent are converted to errors.
func (o *Orchestrator) invokeAgent(ctx context.Context, r *run, docs *configstore.Documents, selected *provider.Selected) (result *agent.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("agent panicked: %v", p)
		}
	}()

	spec := task.Compose(docs.Prompts, docs.Browser, o.env)

	factory, err := o.agents(agent.ConfigFromSettings(docs.Browser), r.log)
	if err != nil {
		return nil, err
	}
	a, err := factory.New(spec, selected.Client)
	if err != nil {
		return nil, err
	}

	r.log.Info(ctx, r.messages.Text(configstore.SectionMessages, "agent_start", fallbackAgentStart), map[string]interface{}{
		"elapsed": clock.FormatDuration(r.agent.Elapsed()),
	})
	r.log.Info(ctx, r.messages.Text(configstore.SectionMessages, "task_description", fallbackTaskDescription), nil)

	result, err = a.Run(ctx)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = &agent.Result{}
	}
	return result, nil
}

func (o *Orchestrator) transition(ctx context.Context, r *run, to State) {
	r.log.Debug(ctx, "state transition", map[string]interface{}{
		"from": string(r.outcome.State),
		"to":   string(to),
	})
	r.outcome.State = to
}

func (o *Orchestrator) fail(ctx context.Context, r *run, runErr *Error, msg string) {
	r.outcome.Err = runErr
	o.transition(ctx, r, StateFailed)
	r.log.Info(ctx, msg, map[string]interface{}{
		"kind": string(runErr.Kind),
	})
}

func (o *Orchestrator) showHeader(ctx context.Context, r *run) {
	m := r.messages
	sep := strings.Repeat("=", m.SeparatorLength())
	r.log.Info(ctx, sep, nil)
	r.log.Info(ctx, m.Text(configstore.SectionHeaders, "program_title", fallbackTitle), nil)
	r.log.Info(ctx, sep, nil)
}

func (o *Orchestrator) showCredentialError(ctx context.Context, r *run, reg *provider.Registry) {
	m := r.messages
	r.log.Error(ctx, m.Text(configstore.SectionErrors, "no_api_key", fallbackNoAPIKey), nil)
	r.log.Info(ctx, m.Text(configstore.SectionErrors, "env_setup_instruction", fallbackEnvSetup), nil)
	for _, d := range reg.Descriptors() {
		r.log.Info(ctx, "   - "+d.CredentialEnv, map[string]interface{}{
			"provider": d.Name,
		})
	}
}

func (o *Orchestrator) showMissingEnvironment(ctx context.Context, r *run, missing []string) {
	m := r.messages
	r.log.Error(ctx, m.Text(configstore.SectionErrors, "missing_env_vars", fallbackMissingEnv), nil)
	for _, name := range missing {
		r.log.Info(ctx, "  - "+name, nil)
	}
	r.log.Info(ctx, m.Text(configstore.SectionErrors, "env_setup_instruction", fallbackEnvSetup), nil)
	for _, name := range missing {
		if example, ok := envExamples[name]; ok {
			r.log.Info(ctx, example, nil)
		}
	}
}

func (o *Orchestrator) showAgentFailure(ctx context.Context, r *run, err error) {
	m := r.messages
	r.outcome.Err = &Error{Kind: KindAgentExecution, Err: err}
	o.transition(ctx, r, StateFailed)

	r.log.Info(ctx, "exiting after error (run time: "+clock.FormatDuration(r.outcome.Elapsed)+")", map[string]interface{}{
		"kind": string(KindAgentExecution),
	})
	r.log.Error(ctx, m.Text(configstore.SectionMessages, "error_occurred", fallbackErrorOccurred)+": "+err.Error(), nil)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.log.Warn(ctx, "agent run was interrupted", nil)
	}
	r.log.Info(ctx, m.Text(configstore.SectionTroubleshooting, "title", fallbackHintsTitle), nil)
	for _, h := range troubleshootingHints {
		r.log.Info(ctx, "   - "+m.Text(configstore.SectionTroubleshooting, h.key, h.fallback), nil)
	}
}
