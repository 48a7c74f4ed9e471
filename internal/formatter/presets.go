package formatter

import (
	"fmt"
	"strings"
)

// Preset represents a template preset with name, template string, and description.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry manages template presets.
type PresetRegistry interface {
	Get(name string) (*Preset, error)
	List() []Preset
	Register(preset Preset) error
	// Resolve returns the preset template for name, or name itself when it
	// is not a preset.
	Resolve(nameOrTemplate string) string
}

type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with the default presets.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{presets: make(map[string]Preset)}
	for _, p := range []Preset{
		{
			Name:        "compact",
			Template:    "[{{severity}}] {{message}}",
			Description: "Severity and message",
		},
		{
			Name:        "detailed",
			Template:    "{{time}} {{event}} [{{severity}}] {{message}} ({{duration}})",
			Description: "Time, event, severity, message and lifetime",
		},
		{
			Name:        "ids",
			Template:    "{{id}}",
			Description: "Notification ids only",
		},
		{
			Name:        "tsv",
			Template:    "{{timestamp}}\t{{event}}\t{{id}}\t{{severity}}\t{{duration-ms}}\t{{message}}",
			Description: "Tab separated values for scripts",
		},
	} {
		_ = registry.Register(p)
	}
	return registry
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	return &preset, nil
}

// List returns all available presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		result = append(result, pr.presets[name])
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	if strings.TrimSpace(preset.Name) == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}
	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}

func (pr *presetRegistry) Resolve(nameOrTemplate string) string {
	if p, ok := pr.presets[nameOrTemplate]; ok {
		return p.Template
	}
	return nameOrTemplate
}
