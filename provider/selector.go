package provider

import (
	"context"
	"errors"

	"github.com/hairizuan-noorazman/attendance-agent/environ"
	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
)

// Status is the outcome of evaluating one candidate.
type Status string

const (
	StatusSelected           Status = "selected"
	StatusEligible           Status = "eligible"
	StatusDisabled           Status = "disabled"
	StatusMissingCredential  Status = "missing_credential"
	StatusIntegrationMissing Status = "integration_unavailable"
	StatusConstructFailed    Status = "construction_failed"
)

// Attempt records how a candidate was treated.
type Attempt struct {
	Provider string
	Status   Status
	Err      error
}

// Selected is the provider chosen for a run.
type Selected struct {
	Name       string
	Descriptor Descriptor
	Client     llm.Client
	Attempts   []Attempt
}

// Skipped returns "name (status)" for every candidate passed over before
// the selected one.
func (s *Selected) Skipped() []string {
	var skipped []string
	for _, a := range s.Attempts {
		if a.Status != StatusSelected {
			skipped = append(skipped, a.Provider+" ("+string(a.Status)+")")
		}
	}
	return skipped
}

// Selector picks a provider using a registry of backend constructors.
type Selector struct {
	backends *llm.Registry
	logger   logger.Logger
}

// NewSelector creates a selector.
func NewSelector(backends *llm.Registry, log logger.Logger) *Selector {
	return &Selector{
		backends: backends,
		logger:   log,
	}
}

// Select walks CandidateOrder and returns the first provider that is enabled,
// has its credential set and constructs a client. Construction failures are
// logged and the walk continues. ErrNoEligibleProvider is returned when
// nothing qualifies.
func (s *Selector) Select(ctx context.Context, reg *Registry, env environ.Environment) (*Selected, error) {
	var attempts []Attempt

	for _, name := range CandidateOrder(reg) {
		d, _ := reg.Get(name)

		if status, ok := gate(d, env); !ok {
			s.logger.Debug(ctx, "provider skipped", map[string]interface{}{
				"provider": name,
				"reason":   string(status),
			})
			attempts = append(attempts, Attempt{Provider: name, Status: status})
			continue
		}

		client, err := s.backends.New(ctx, d.Kind, llm.Spec{
			Provider:      d.Name,
			Model:         d.Model,
			Temperature:   d.Temperature,
			APIKey:        environ.Get(env, d.CredentialEnv),
			CredentialEnv: d.CredentialEnv,
			Region:        d.Region,
		})
		if err != nil {
			status := StatusConstructFailed
			if errors.Is(err, llm.ErrIntegrationUnavailable) {
				status = StatusIntegrationMissing
			}
			s.logger.Warn(ctx, "provider client could not be created", map[string]interface{}{
				"provider": name,
				"kind":     string(d.Kind),
				"error":    err.Error(),
			})
			attempts = append(attempts, Attempt{Provider: name, Status: status, Err: err})
			continue
		}

		attempts = append(attempts, Attempt{Provider: name, Status: StatusSelected})
		s.logger.Debug(ctx, "provider selected", map[string]interface{}{
			"provider": name,
			"model":    d.Model,
		})
		return &Selected{
			Name:       name,
			Descriptor: d,
			Client:     client,
			Attempts:   attempts,
		}, nil
	}

	return nil, ErrNoEligibleProvider
}

// Check reports the enabled and credential gates for every candidate
// without constructing clients. The first passing candidate is marked
// StatusSelected, later passing ones StatusEligible.
func Check(reg *Registry, env environ.Environment) []Attempt {
	var attempts []Attempt
	chosen := false
	for _, name := range CandidateOrder(reg) {
		d, _ := reg.Get(name)
		status, ok := gate(d, env)
		if ok {
			status = StatusEligible
			if !chosen {
				status = StatusSelected
				chosen = true
			}
		}
		attempts = append(attempts, Attempt{Provider: name, Status: status})
	}
	return attempts
}

func gate(d Descriptor, env environ.Environment) (Status, bool) {
	if !d.Enabled {
		return StatusDisabled, false
	}
	if !environ.Has(env, d.CredentialEnv) {
		return StatusMissingCredential, false
	}
	return "", true
}
