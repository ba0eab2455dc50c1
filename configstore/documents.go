package configstore

import (
	"fmt"
	"strconv"

	"github.com/hairizuan-noorazman/attendance-agent/provider"
	"gopkg.in/yaml.v3"
)

// ModelsDocument is the model registry document.
type ModelsDocument struct {
	Models   provider.Registry `yaml:"models"`
	Settings ModelSettings     `yaml:"settings"`
}

// ModelSettings holds registry-wide settings.
type ModelSettings struct {
	DefaultModel string `yaml:"default_model"`
}

// Registry returns the provider registry with its default applied.
func (d *ModelsDocument) Registry() *provider.Registry {
	reg := &d.Models
	reg.Default = d.Settings.DefaultModel
	return reg
}

// DefaultTaskKey names the catalog-wide fallback task.
const DefaultTaskKey = "default_task"

// PromptCatalog maps template names to template strings. Non-string entries
// are ignored.
type PromptCatalog map[string]string

// UnmarshalYAML keeps scalar string entries of a top-level mapping.
func (c *PromptCatalog) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: prompt catalog must be a mapping", node.Line)
	}
	out := make(PromptCatalog, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		out[k.Value] = v.Value
	}
	*c = out
	return nil
}

// Template returns the named template when present and non-empty.
func (c PromptCatalog) Template(name string) (string, bool) {
	t, ok := c[name]
	return t, ok && t != ""
}

// MessageCatalog maps section and key to display text.
type MessageCatalog struct {
	sections map[string]map[string]string
}

// Message catalog sections.
const (
	SectionHeaders         = "headers"
	SectionMessages        = "messages"
	SectionErrors          = "errors"
	SectionTroubleshooting = "troubleshooting"
)

// DefaultSeparatorLength is used when headers.separator_length is unset.
const DefaultSeparatorLength = 60

// NewMessageCatalog builds a catalog from nested maps.
func NewMessageCatalog(sections map[string]map[string]string) *MessageCatalog {
	return &MessageCatalog{sections: sections}
}

// UnmarshalYAML decodes a mapping of sections, each a mapping of scalars.
func (m *MessageCatalog) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: message catalog must be a mapping", node.Line)
	}
	m.sections = make(map[string]map[string]string)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name, section := node.Content[i], node.Content[i+1]
		if section.Kind != yaml.MappingNode {
			continue
		}
		entries := make(map[string]string, len(section.Content)/2)
		for j := 0; j+1 < len(section.Content); j += 2 {
			k, v := section.Content[j], section.Content[j+1]
			if v.Kind == yaml.ScalarNode && v.Tag != "!!null" {
				entries[k.Value] = v.Value
			}
		}
		m.sections[name.Value] = entries
	}
	return nil
}

// Text returns the entry at section/key, or fallback when the catalog, the
// section or the key is missing.
func (m *MessageCatalog) Text(section, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if v, ok := m.sections[section][key]; ok && v != "" {
		return v
	}
	return fallback
}

// SeparatorLength returns headers.separator_length, or the default.
func (m *MessageCatalog) SeparatorLength() int {
	raw := m.Text(SectionHeaders, "separator_length", "")
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultSeparatorLength
	}
	return n
}

// DefaultTaskTemplate is the template used when browser settings name none.
const DefaultTaskTemplate = "meta_attendance_task_template"

// BrowserSettings is the browser and runtime settings document.
type BrowserSettings struct {
	Browser         BrowserOptions  `yaml:"browser"`
	PromptSelection PromptSelection `yaml:"prompt_selection"`
	Agent           AgentOptions    `yaml:"agent"`
}

// BrowserOptions configures the browser driven by the agent.
type BrowserOptions struct {
	Headless *bool `yaml:"headless"`
}

// PromptSelection chooses the task template.
type PromptSelection struct {
	TaskTemplate string `yaml:"task_template"`
}

// AgentOptions configures how the agent is launched.
type AgentOptions struct {
	Mode    string   `yaml:"mode"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	WorkDir string   `yaml:"work_dir"`
}

// Headless reports whether the browser runs headless. Defaults to true.
func (b *BrowserSettings) Headless() bool {
	if b == nil || b.Browser.Headless == nil {
		return true
	}
	return *b.Browser.Headless
}

// TemplateName returns the selected template, or DefaultTaskTemplate.
func (b *BrowserSettings) TemplateName() string {
	if b == nil || b.PromptSelection.TaskTemplate == "" {
		return DefaultTaskTemplate
	}
	return b.PromptSelection.TaskTemplate
}
