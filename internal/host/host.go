// Package host runs the native messaging loop: it reads framed requests from
// the desktop shell, dispatches them to the command registry and writes one
// framed response per request. The loop does NOT interpret commands itself.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/videolighter/desktop-host/internal/commands"
	"github.com/videolighter/desktop-host/internal/config"
	"github.com/videolighter/desktop-host/internal/messaging"
)

// Host serves requests for a single shell connection.
type Host struct {
	registry        *commands.Registry
	logger          *zap.Logger
	maxMessageBytes int
}

// New creates a Host dispatching to registry.
func New(registry *commands.Registry, cfg *config.Config, logger *zap.Logger) *Host {
	return &Host{
		registry:        registry,
		logger:          logger.Named("host"),
		maxMessageBytes: cfg.Host.MaxMessageBytes,
	}
}

// readResult carries one decoded frame, or the error that ended the stream.
type readResult struct {
	req *messaging.Request
	err error
}

// Serve processes requests from in until in reaches EOF, a frame cannot be
// decoded, a response cannot be written, or ctx is cancelled. A clean EOF
// returns nil.
func (h *Host) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	done := make(chan struct{})
	defer close(done)

	reqs := make(chan readResult)
	go h.readLoop(messaging.NewReader(in, h.maxMessageBytes), reqs, done)

	h.logger.Info("Host serving", zap.Strings("commands", h.registry.Names()))

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Host stopping", zap.Error(ctx.Err()))
			return ctx.Err()
		case rr := <-reqs:
			if rr.err != nil {
				if errors.Is(rr.err, io.EOF) {
					h.logger.Info("Shell closed the connection")
					return nil
				}
				return fmt.Errorf("reading request: %w", rr.err)
			}
			resp := h.handle(ctx, rr.req)
			if err := messaging.WriteResponse(out, resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}
	}
}

// readLoop decodes frames until an error, handing each to Serve.
func (h *Host) readLoop(r *messaging.Reader, reqs chan<- readResult, done <-chan struct{}) {
	for {
		req, err := r.ReadRequest()
		select {
		case reqs <- readResult{req: req, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (h *Host) handle(ctx context.Context, req *messaging.Request) messaging.Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	start := time.Now()
	resp := h.registry.Dispatch(ctx, req)

	h.logger.Debug("Handled request",
		zap.String("id", req.ID),
		zap.String("command", req.Command),
		zap.String("path", req.Path),
		zap.Bool("success", resp.Success),
		zap.Duration("elapsed", time.Since(start)))

	return resp
}
