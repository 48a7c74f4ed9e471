package format

import (
	"fmt"
	"io"

	"github.com/cristianoliveira/toastbox/internal/formatter"
	"github.com/cristianoliveira/toastbox/internal/history"
)

// TemplateFormatter writes one line per entry from a line template.
type TemplateFormatter struct {
	template string
	engine   formatter.TemplateEngine
}

// NewTemplateFormatter resolves nameOrTemplate against the preset registry
// and validates the result.
func NewTemplateFormatter(nameOrTemplate string) (*TemplateFormatter, error) {
	tmpl := formatter.NewPresetRegistry().Resolve(nameOrTemplate)
	engine := formatter.NewTemplateEngine()
	if err := engine.Validate(tmpl); err != nil {
		return nil, err
	}
	return &TemplateFormatter{template: tmpl, engine: engine}, nil
}

// FormatEntries renders each entry with the template.
func (f *TemplateFormatter) FormatEntries(entries []history.Entry, writer io.Writer) error {
	for _, e := range entries {
		line, err := f.engine.Substitute(f.template, formatter.VariableContext{
			Seq:        e.Seq,
			Event:      string(e.Event),
			ID:         e.ID.String(),
			Severity:   e.Severity.String(),
			Message:    e.Message,
			DurationMs: e.DurationMs,
			At:         e.At,
		})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}
