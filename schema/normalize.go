package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizeCommandName lower-cases and trims a command name. Names must be a
// single token of printable characters so they can be typed at the prompt.
func NormalizeCommandName(name string) (CommandName, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidCommand)
	}
	for _, r := range trimmed {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return "", fmt.Errorf("%w: name %q", ErrInvalidCommand, name)
		}
	}
	return CommandName(trimmed), nil
}
