// Package commands defines the commands the desktop shell may invoke and the
// registry that dispatches requests to them.
package commands

import (
	"context"
	"errors"

	"github.com/videolighter/desktop-host/internal/messaging"
)

// Error codes carried in messaging.Response.Error.
const (
	CodeUnknownCommand = "unknown_command"
	CodeInvalidRequest = "invalid_request"
	CodeCommandFailed  = "command_failed"
)

var (
	// ErrUnknownCommand is returned by Lookup for unregistered names.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingPath is returned by path commands invoked without a path.
	ErrMissingPath = errors.New("path is required")
)

// Command is the interface every shell-invokable command implements.
type Command interface {
	// Name returns the canonical command name, e.g. "move-to-trash".
	Name() string

	// Handle executes the command. The returned value becomes the
	// response result; a non-nil error is reported to the shell as a string.
	Handle(ctx context.Context, req *messaging.Request) (interface{}, error)
}
