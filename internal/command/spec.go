package command

import (
	"context"

	"pkt.systems/devconsole/schema"
)

// Sentinel strings returned by the built-in commands. Hosts and tests match
// on them, so they are part of the console vocabulary.
const (
	ResultSuccessful       = "successful"
	ResultTooManyArguments = "tooManyArguments"
)

// ResultKind tags the outcome of a command handler.
type ResultKind int

const (
	// ResultOK is a successful invocation.
	ResultOK ResultKind = iota
	// ResultInvalidArgs rejects the arguments without side effects.
	ResultInvalidArgs
	// ResultFailed reports a failure while running the command.
	ResultFailed
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultInvalidArgs:
		return "invalid_args"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is what a handler returns. An empty Text means nothing is logged.
type Result struct {
	Kind ResultKind
	Text string
}

// OK returns a successful result.
func OK(text string) Result {
	return Result{Kind: ResultOK, Text: text}
}

// InvalidArgs returns an argument rejection.
func InvalidArgs(text string) Result {
	return Result{Kind: ResultInvalidArgs, Text: text}
}

// Failed returns a failure carrying the error text.
func Failed(err error) Result {
	if err == nil {
		return Result{Kind: ResultFailed, Text: "command failed"}
	}
	return Result{Kind: ResultFailed, Text: err.Error()}
}

// Handler executes a command with its whitespace-split arguments.
type Handler func(ctx context.Context, args []string) Result

// StringHandler adapts a plain args-to-text function. Non-empty text is OK.
func StringHandler(fn func(args []string) string) Handler {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, args []string) Result {
		return OK(fn(args))
	}
}

// Action adapts a function that produces no output.
func Action(fn func(args []string)) Handler {
	if fn == nil {
		return nil
	}
	return func(_ context.Context, args []string) Result {
		fn(args)
		return Result{}
	}
}

// Spec describes a registered command.
type Spec struct {
	Name        schema.CommandName
	Description string
	Handler     Handler
}
