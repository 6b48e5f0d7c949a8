package logx

import (
	"context"

	"pkt.systems/devconsole/schema"
	"pkt.systems/pslog"
)

type contextKey int

const (
	sessionKey contextKey = iota
	commandKey
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithSession annotates the logger with the session id unless the context
// already carries it.
func WithSession(ctx context.Context, sessionID schema.SessionID) pslog.Logger {
	log := pslog.Ctx(ctx)
	if sessionID != "" {
		if current, ok := ctx.Value(sessionKey).(schema.SessionID); ok && current == sessionID {
			return log
		}
		log = log.With("session", string(sessionID))
	}
	return log
}

// WithCommand annotates the logger with the command name.
func WithCommand(ctx context.Context, name schema.CommandName) pslog.Logger {
	log := pslog.Ctx(ctx)
	if name != "" {
		if current, ok := ctx.Value(commandKey).(schema.CommandName); ok && current == name {
			return log
		}
		log = log.With("command", name)
	}
	return log
}

// ContextWithSession stores the session marker on the context.
func ContextWithSession(ctx context.Context, sessionID schema.SessionID) context.Context {
	if ctx == nil || sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, sessionID)
}

// ContextWithCommand stores the command marker on the context.
func ContextWithCommand(ctx context.Context, name schema.CommandName) context.Context {
	if ctx == nil || name == "" {
		return ctx
	}
	return context.WithValue(ctx, commandKey, name)
}

// ContextWithSessionLogger attaches the logger and session marker to the context.
func ContextWithSessionLogger(ctx context.Context, log pslog.Logger, sessionID schema.SessionID) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithSession(ctx, sessionID)
}

// ContextWithCommandLogger attaches the logger and command marker to the context.
func ContextWithCommandLogger(ctx context.Context, log pslog.Logger, name schema.CommandName) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithCommand(ctx, name)
}

// SessionFromContext returns the session marker, if any.
func SessionFromContext(ctx context.Context) (schema.SessionID, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(sessionKey).(schema.SessionID)
	return id, ok && id != ""
}
