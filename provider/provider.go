// Package provider holds the model registry and picks the LLM backend for a
// run. Selection walks the registry default-first and takes the first
// provider that is enabled, credentialed and constructible.
package provider

import (
	"errors"
	"fmt"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoEligibleProvider is returned when no registered provider passes
	// the enabled, credential and construction checks.
	ErrNoEligibleProvider = errors.New("no eligible provider")
	// ErrDuplicateProvider is returned when a registry names a provider twice.
	ErrDuplicateProvider = errors.New("duplicate provider")
)

const (
	// DefaultName is the default provider when the registry sets none.
	DefaultName = "openai"
	// DefaultTemperature applies when a descriptor omits temperature.
	DefaultTemperature = 0.7
)

// Descriptor is one provider entry of the model registry.
type Descriptor struct {
	Name          string
	Kind          llm.Kind
	Enabled       bool
	CredentialEnv string
	Model         string
	Temperature   float64
	Region        string
}

type descriptorYAML struct {
	Kind          string   `yaml:"kind"`
	Enabled       bool     `yaml:"enabled"`
	CredentialEnv string   `yaml:"api_key_env"`
	Model         string   `yaml:"model"`
	Temperature   *float64 `yaml:"temperature"`
	Region        string   `yaml:"region"`
}

func (raw descriptorYAML) descriptor(name string) Descriptor {
	d := Descriptor{
		Name:          name,
		Kind:          llm.Kind(raw.Kind),
		Enabled:       raw.Enabled,
		CredentialEnv: raw.CredentialEnv,
		Model:         raw.Model,
		Temperature:   DefaultTemperature,
		Region:        raw.Region,
	}
	if d.Kind == "" {
		d.Kind = llm.Kind(name)
	}
	if raw.Temperature != nil {
		d.Temperature = *raw.Temperature
	}
	return d
}

// Registry is an ordered set of descriptors plus the default provider name.
// The zero value is an empty registry whose default is DefaultName.
type Registry struct {
	Default     string
	descriptors []Descriptor
	index       map[string]int
}

// NewRegistry builds a registry preserving the order of descriptors.
func NewRegistry(defaultName string, descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{Default: defaultName}
	for _, d := range descriptors {
		if err := r.add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) add(d Descriptor) error {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if _, ok := r.index[d.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, d.Name)
	}
	if d.Kind == "" {
		d.Kind = llm.Kind(d.Name)
	}
	r.index[d.Name] = len(r.descriptors)
	r.descriptors = append(r.descriptors, d)
	return nil
}

// UnmarshalYAML decodes a mapping of provider name to settings, keeping the
// document order.
func (r *Registry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: models must be a mapping", node.Line)
	}
	r.descriptors = nil
	r.index = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var raw descriptorYAML
		if err := valueNode.Decode(&raw); err != nil {
			return fmt.Errorf("provider %s: %w", keyNode.Value, err)
		}
		if err := r.add(raw.descriptor(keyNode.Value)); err != nil {
			return err
		}
	}
	return nil
}

// DefaultProvider returns the configured default name or DefaultName.
func (r *Registry) DefaultProvider() string {
	if r == nil || r.Default == "" {
		return DefaultName
	}
	return r.Default
}

// Get returns the descriptor for name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.descriptors[i], true
}

// Descriptors returns the descriptors in registry order.
func (r *Registry) Descriptors() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Names returns provider names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.descriptors))
	for i, d := range r.descriptors {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of providers.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.descriptors)
}

// CandidateOrder returns the default provider, when registered, followed by
// every other provider in registry order.
func CandidateOrder(r *Registry) []string {
	def := r.DefaultProvider()
	order := make([]string, 0, r.Len()+1)
	if _, ok := r.Get(def); ok {
		order = append(order, def)
	}
	for _, name := range r.Names() {
		if name != def {
			order = append(order, name)
		}
	}
	return order
}

// ExpectedCredentials lists every provider's credential variable in
// registry order.
func ExpectedCredentials(r *Registry) []string {
	vars := make([]string, 0, r.Len())
	for _, d := range r.Descriptors() {
		vars = append(vars, d.CredentialEnv)
	}
	return vars
}
