// Package formatter provides template parsing, variable resolution, and preset management
// for rendering journal entries with user-supplied line templates.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateEngine provides template parsing and variable substitution.
type TemplateEngine interface {
	// Parse returns the variables found in the template, without duplicates.
	Parse(template string) ([]string, error)

	// Substitute replaces variables in the template with values from the context.
	Substitute(template string, ctx VariableContext) (string, error)

	// Validate checks delimiters and that every variable is known.
	Validate(template string) error
}

type templateEngine struct {
	variablePattern *regexp.Regexp
	resolver        VariableResolver
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		variablePattern: regexp.MustCompile(`\{\{([a-z0-9-]+)\}\}`),
		resolver:        NewVariableResolver(),
	}
}

// Parse identifies all variables in a template string using {{variable-name}} syntax.
func (te *templateEngine) Parse(template string) ([]string, error) {
	matches := te.variablePattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	variables := []string{}
	for _, match := range matches {
		name := match[1]
		if !seen[name] {
			variables = append(variables, name)
			seen[name] = true
		}
	}
	return variables, nil
}

// Substitute replaces all variables in the template with values from the context.
// Unknown variables are an error.
func (te *templateEngine) Substitute(template string, ctx VariableContext) (string, error) {
	var resolveErr error
	out := te.variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		if resolveErr != nil {
			return match
		}
		name := te.variablePattern.FindStringSubmatch(match)[1]
		value, err := te.resolver.Resolve(name, ctx)
		if err != nil {
			resolveErr = err
			return match
		}
		return value
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// Validate checks if a template has balanced delimiters and known variables.
func (te *templateEngine) Validate(template string) error {
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("template cannot be empty")
	}
	opens := strings.Count(template, "{{")
	closes := strings.Count(template, "}}")
	if opens != closes {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d closes", opens, closes)
	}
	if n := len(te.variablePattern.FindAllString(template, -1)); n != opens {
		return fmt.Errorf("malformed variable in template %q", template)
	}
	vars, _ := te.Parse(template)
	for _, v := range vars {
		if !IsVariable(v) {
			return fmt.Errorf("unknown variable: %s (available: %s)", v, strings.Join(Variables(), ", "))
		}
	}
	return nil
}
