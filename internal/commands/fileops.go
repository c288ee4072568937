package commands

import (
	"context"

	"github.com/videolighter/desktop-host/internal/messaging"
	"github.com/videolighter/desktop-host/internal/platform"
)

// MoveToTrash handles "move-to-trash".
type MoveToTrash struct{ ops platform.FileOps }

// NewMoveToTrash creates the move-to-trash command.
func NewMoveToTrash(ops platform.FileOps) *MoveToTrash { return &MoveToTrash{ops: ops} }

// Name returns the command name.
func (c *MoveToTrash) Name() string { return "move-to-trash" }

// Handle moves req.Path to the trash and returns no result.
func (c *MoveToTrash) Handle(_ context.Context, req *messaging.Request) (interface{}, error) {
	if req.Path == "" {
		return nil, ErrMissingPath
	}
	if err := c.ops.MoveToTrash(req.Path); err != nil {
		return nil, err
	}
	return nil, nil
}

// ShowInFolder handles "show-in-folder". It reports success for any path,
// including an empty one.
type ShowInFolder struct{ ops platform.FileOps }

// NewShowInFolder creates the show-in-folder command.
func NewShowInFolder(ops platform.FileOps) *ShowInFolder { return &ShowInFolder{ops: ops} }

// Name returns the command name.
func (c *ShowInFolder) Name() string { return "show-in-folder" }

// Handle asks the platform to reveal req.Path.
func (c *ShowInFolder) Handle(_ context.Context, req *messaging.Request) (interface{}, error) {
	c.ops.RevealInFolder(req.Path)
	return nil, nil
}

// GetMachineID handles "get-machine-id".
type GetMachineID struct{ ops platform.FileOps }

// NewGetMachineID creates the get-machine-id command.
func NewGetMachineID(ops platform.FileOps) *GetMachineID { return &GetMachineID{ops: ops} }

// Name returns the command name.
func (c *GetMachineID) Name() string { return "get-machine-id" }

// Handle returns the machine identifier string.
func (c *GetMachineID) Handle(ctx context.Context, _ *messaging.Request) (interface{}, error) {
	id, err := c.ops.MachineID(ctx)
	if err != nil {
		return nil, err
	}
	return id, nil
}

// GetPlatformInfo handles "get-platform-info".
type GetPlatformInfo struct{ ops platform.FileOps }

// NewGetPlatformInfo creates the get-platform-info command.
func NewGetPlatformInfo(ops platform.FileOps) *GetPlatformInfo { return &GetPlatformInfo{ops: ops} }

// Name returns the command name.
func (c *GetPlatformInfo) Name() string { return "get-platform-info" }

// Handle returns platform.Info for the host.
func (c *GetPlatformInfo) Handle(ctx context.Context, _ *messaging.Request) (interface{}, error) {
	info, err := c.ops.Info(ctx)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// Ping handles "ping" so the shell can check that the host is alive.
type Ping struct{}

// Name returns the command name.
func (Ping) Name() string { return "ping" }

// Handle returns "pong".
func (Ping) Handle(context.Context, *messaging.Request) (interface{}, error) {
	return "pong", nil
}

// RegisterDefaults registers every built-in command backed by ops.
func RegisterDefaults(r *Registry, ops platform.FileOps) {
	r.Register(NewMoveToTrash(ops))
	r.Register(NewShowInFolder(ops))
	r.Register(NewGetMachineID(ops))
	r.Register(NewGetPlatformInfo(ops))
	r.Register(Ping{})
}
