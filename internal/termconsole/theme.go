package termconsole

import (
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/devconsole/schema"
)

// systemBadge prefixes the first row of system entries.
const systemBadge = "◆ "

type palette struct {
	Header     lipgloss.Color
	HeaderFG   lipgloss.Color
	User       lipgloss.Color
	System     lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Badge      lipgloss.Color
	Prompt     lipgloss.Color
	Suggestion lipgloss.Color
	Hint       lipgloss.Color
}

var palettes = map[schema.ThemeName]palette{
	"classic": {
		Header:     "#3a3a3a",
		HeaderFG:   "#ffffff",
		User:       "#ffffff",
		System:     "#b7b7b7",
		Warning:    "#ffff00",
		Error:      "#ff0000",
		Badge:      "#4aa8ff",
		Prompt:     "#ffffff",
		Suggestion: "#8a8a8a",
		Hint:       "#6c6c6c",
	},
	"gruvbox": {
		Header:     "#3c3836",
		HeaderFG:   "#ebdbb2",
		User:       "#ebdbb2",
		System:     "#928374",
		Warning:    "#fabd2f",
		Error:      "#fb4934",
		Badge:      "#83a598",
		Prompt:     "#ffffff",
		Suggestion: "#83a598",
		Hint:       "#665c54",
	},
	"tokyo-midnight": {
		Header:     "#1a1b26",
		HeaderFG:   "#c0caf5",
		User:       "#c0caf5",
		System:     "#7f85a3",
		Warning:    "#e0af68",
		Error:      "#f7768e",
		Badge:      "#7aa2f7",
		Prompt:     "#ffffff",
		Suggestion: "#7dcfff",
		Hint:       "#3b4f9f",
	},
}

// styles are the lipgloss styles derived from a palette.
type styles struct {
	name       schema.ThemeName
	header     lipgloss.Style
	severity   map[schema.Severity]lipgloss.Style
	badge      lipgloss.Style
	prompt     lipgloss.Style
	suggestion lipgloss.Style
	hint       lipgloss.Style
}

func stylesFor(name schema.ThemeName) styles {
	normalized, ok := schema.NormalizeThemeName(string(name))
	if !ok {
		normalized = schema.DefaultTheme
	}
	p := palettes[normalized]
	return styles{
		name:   normalized,
		header: lipgloss.NewStyle().Background(p.Header).Foreground(p.HeaderFG).Bold(true),
		severity: map[schema.Severity]lipgloss.Style{
			schema.SeverityUser:    lipgloss.NewStyle().Foreground(p.User),
			schema.SeveritySystem:  lipgloss.NewStyle().Foreground(p.System),
			schema.SeverityWarning: lipgloss.NewStyle().Foreground(p.Warning),
			schema.SeverityError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		},
		badge:      lipgloss.NewStyle().Foreground(p.Badge),
		prompt:     lipgloss.NewStyle().Foreground(p.Prompt).Bold(true),
		suggestion: lipgloss.NewStyle().Foreground(p.Suggestion).Italic(true),
		hint:       lipgloss.NewStyle().Foreground(p.Hint),
	}
}

// row renders one scrollback row, truncated to width.
func (s styles) row(line displayLine, width int) string {
	text := line.text
	prefix := ""
	switch {
	case line.severity == schema.SeveritySystem && line.first:
		prefix = s.badge.Render(systemBadge)
	case line.severity == schema.SeveritySystem:
		prefix = "  "
	}
	avail := width - lipgloss.Width(prefix)
	if avail < 1 {
		avail = 1
	}
	style, ok := s.severity[line.severity]
	if !ok {
		style = s.severity[schema.SeveritySystem]
	}
	return prefix + style.MaxWidth(avail).Render(text)
}
