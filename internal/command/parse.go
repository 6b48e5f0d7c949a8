package command

import (
	"strings"

	"pkt.systems/devconsole/schema"
)

// Line represents a parsed console command line.
type Line struct {
	Name schema.CommandName
	Args []string
	Raw  string
}

// Parse splits input on whitespace. The first token, lower-cased, is the
// command name and the rest are its arguments. There is no quoting or
// escaping. ok is false for blank input.
func Parse(input string) (Line, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Line{Raw: input}, false
	}
	args := []string{}
	if len(fields) > 1 {
		args = fields[1:]
	}
	return Line{
		Name: schema.CommandName(strings.ToLower(fields[0])),
		Args: args,
		Raw:  input,
	}, true
}
