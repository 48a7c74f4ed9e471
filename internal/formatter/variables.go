package formatter

import (
	"fmt"
	"strconv"
	"time"
)

// VariableContext contains the data a template line can reference.
type VariableContext struct {
	Seq        int64
	Event      string
	ID         string
	Severity   string
	Message    string
	DurationMs int64
	At         time.Time
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return variableResolver{}
}

var variableNames = []string{
	"seq",
	"event",
	"id",
	"severity",
	"message",
	"duration-ms",
	"duration",
	"time",
	"timestamp",
}

// Variables lists the variable names templates may use.
func Variables() []string {
	return append([]string(nil), variableNames...)
}

// IsVariable reports whether name is a known variable.
func IsVariable(name string) bool {
	for _, v := range variableNames {
		if v == name {
			return true
		}
	}
	return false
}

// Resolve returns the string value for a variable from the context.
func (variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	case "seq":
		return strconv.FormatInt(ctx.Seq, 10), nil
	case "event":
		return ctx.Event, nil
	case "id":
		return ctx.ID, nil
	case "severity":
		return ctx.Severity, nil
	case "message":
		return ctx.Message, nil
	case "duration-ms":
		return strconv.FormatInt(ctx.DurationMs, 10), nil
	case "duration":
		if ctx.DurationMs == 0 {
			return "sticky", nil
		}
		return (time.Duration(ctx.DurationMs) * time.Millisecond).String(), nil
	case "time":
		return ctx.At.Local().Format("2006-01-02 15:04:05"), nil
	case "timestamp":
		return ctx.At.UTC().Format(time.RFC3339), nil
	default:
		return "", fmt.Errorf("unknown variable: %s", varName)
	}
}
