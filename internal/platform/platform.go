// Package platform implements the file operations a desktop shell delegates to
// the operating system: moving a path to the trash, revealing a file in the
// platform file manager, and reading a stable machine identifier.
//
// The OS-specific part is limited to revealing files; it is selected once per
// Platform from the target OS. Trash and machine-id handling are delegated to
// wastebasket and gopsutil respectively.
package platform

import (
	"context"
	"os/exec"
	"runtime"
	"sync"

	"github.com/Bios-Marcel/wastebasket/v2"
	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"

	"github.com/videolighter/desktop-host/internal/config"
)

// OS facilities, replaced in tests.
var (
	trashFunc    = wastebasket.Trash
	hostIDFunc   = host.HostIDWithContext
	hostInfoFunc = host.InfoWithContext
	startProcess = startDetached
)

// FileOps is the set of operations exposed to the desktop shell.
type FileOps interface {
	// MoveToTrash moves the file or directory at path to the OS trash.
	MoveToTrash(path string) error

	// RevealInFolder opens the parent folder of path in the file manager,
	// selecting path where the platform supports it. Failures are not reported.
	RevealInFolder(path string)

	// MachineID returns a stable identifier for the current machine.
	MachineID(ctx context.Context) (string, error)

	// Info describes the host operating system.
	Info(ctx context.Context) (Info, error)
}

var _ FileOps = (*Platform)(nil)

// Platform implements FileOps for the OS it was created for.
// It is safe for concurrent use.
type Platform struct {
	logger   *zap.Logger
	revealer Revealer
	salt     string

	idMu      sync.Mutex
	machineID string

	infoMu sync.Mutex
	info   *Info
}

// New creates a Platform for the running operating system.
func New(cfg *config.Config, logger *zap.Logger) *Platform {
	return NewForOS(runtime.GOOS, cfg, logger)
}

// NewForOS creates a Platform whose reveal strategy targets goos.
func NewForOS(goos string, cfg *config.Config, logger *zap.Logger) *Platform {
	return &Platform{
		logger:   logger.Named("platform"),
		revealer: NewRevealer(goos, cfg.Reveal),
		salt:     cfg.MachineID.Salt,
	}
}

// Name returns the reveal strategy in use (explorer, finder, xdg).
func (p *Platform) Name() string { return p.revealer.Name() }

// startDetached launches cmd without waiting for it. The child is reaped in
// the background and its exit status is never inspected.
func startDetached(cmd *exec.Cmd) error {
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
