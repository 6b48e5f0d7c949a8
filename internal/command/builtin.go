package command

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pkt.systems/pslog"
)

// TimeScaler receives the value set by the time-scale command.
type TimeScaler interface {
	SetTimeScale(scale float64)
}

// Builtins returns the help and time-scale commands. help lists whatever is
// in registry at call time.
func Builtins(registry *Registry, scaler TimeScaler) []Spec {
	return []Spec{
		{
			Name:        "help",
			Description: "List all available commands",
			Handler:     helpHandler(registry),
		},
		{
			Name:        "time-scale",
			Description: "Set the host time scale (time-scale <value>)",
			Handler:     timeScaleHandler(scaler),
		},
	}
}

func helpHandler(registry *Registry) Handler {
	return func(_ context.Context, _ []string) Result {
		specs := registry.Specs()
		lines := make([]string, 0, len(specs))
		for _, spec := range specs {
			lines = append(lines, fmt.Sprintf("- %s: %s", spec.Name, spec.Description))
		}
		slices.Sort(lines)
		return OK(strings.Join(lines, "\n"))
	}
}

func timeScaleHandler(scaler TimeScaler) Handler {
	return func(ctx context.Context, args []string) Result {
		if len(args) != 1 {
			return InvalidArgs(ResultTooManyArguments)
		}
		value, err := strconv.ParseFloat(args[0], 32)
		if err != nil {
			pslog.Ctx(ctx).Debug("console time-scale rejected", "value", args[0])
			return InvalidArgs("")
		}
		if scaler != nil {
			scaler.SetTimeScale(value)
		}
		pslog.Ctx(ctx).Info("console time-scale set", "scale", value)
		return OK(ResultSuccessful)
	}
}
