package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/videolighter/desktop-host/internal/messaging"
)

// Registry maps command names to commands.
// Registration happens at startup; lookups are read-only afterwards.
type Registry struct {
	commands map[string]Command
	logger   *zap.Logger
}

// NewRegistry creates an empty command registry with the given logger.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		commands: make(map[string]Command),
		logger:   logger.Named("commands"),
	}
}

// Register adds a command. A later registration with the same name replaces
// the earlier one.
func (r *Registry) Register(c Command) {
	name := normalize(c.Name())
	if _, exists := r.commands[name]; exists {
		r.logger.Warn("Replacing registered command", zap.String("name", name))
	}
	r.commands[name] = c
	r.logger.Debug("Registered command", zap.String("name", name))
}

// Lookup returns the command registered under name. Underscores and hyphens
// are interchangeable, so "move_to_trash" finds "move-to-trash".
func (r *Registry) Lookup(name string) (Command, error) {
	c, ok := r.commands[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return c, nil
}

// Names returns the sorted canonical names of all registered commands.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the command named by req and converts the outcome into a
// response. Command errors become plain strings; nothing is retried.
func (r *Registry) Dispatch(ctx context.Context, req *messaging.Request) messaging.Response {
	resp := messaging.Response{ID: req.ID}

	c, err := r.Lookup(req.Command)
	if err != nil {
		resp.Error = CodeUnknownCommand
		resp.Message = "Unknown command: " + req.Command
		r.logger.Warn("Unknown command",
			zap.String("id", req.ID),
			zap.String("command", req.Command))
		return resp
	}

	result, err := c.Handle(ctx, req)
	if err != nil {
		resp.Error = CodeCommandFailed
		if errors.Is(err, ErrMissingPath) {
			resp.Error = CodeInvalidRequest
		}
		resp.Message = err.Error()
		r.logger.Info("Command failed",
			zap.String("id", req.ID),
			zap.String("command", c.Name()),
			zap.Error(err))
		return resp
	}

	resp.Success = true
	resp.Result = result
	return resp
}

func normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
}
