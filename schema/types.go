package schema

// SessionID identifies a console input session.
type SessionID string

// ThemeName identifies a terminal theme.
type ThemeName string

// CommandName is the normalized (lower-case) key of a registered command.
type CommandName string
