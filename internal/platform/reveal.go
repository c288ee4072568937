package platform

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/videolighter/desktop-host/internal/config"
)

// ErrNoParent is returned when a path has no parent directory to open.
var ErrNoParent = errors.New("path has no parent directory")

// separators are the characters splitting path components on this OS.
const separators = "/" + string(os.PathSeparator)

// Revealer builds the file manager invocation for one platform family.
type Revealer interface {
	Name() string
	Command(path string) (*exec.Cmd, error)
}

// NewRevealer picks the reveal strategy for goos.
func NewRevealer(goos string, cfg config.RevealConfig) Revealer {
	switch goos {
	case "windows":
		return explorerRevealer{exe: cfg.Explorer}
	case "darwin", "ios":
		return finderRevealer{exe: cfg.Finder}
	default:
		return xdgRevealer{exe: cfg.Opener}
	}
}

// explorerRevealer runs `explorer /select,<path>`, which opens the folder and
// selects the item in one call.
type explorerRevealer struct{ exe string }

func (r explorerRevealer) Name() string { return "explorer" }

func (r explorerRevealer) Command(path string) (*exec.Cmd, error) {
	return exec.Command(r.exe, "/select,"+path), nil
}

// finderRevealer runs `open -R <path>`.
type finderRevealer struct{ exe string }

func (r finderRevealer) Name() string { return "finder" }

func (r finderRevealer) Command(path string) (*exec.Cmd, error) {
	return exec.Command(r.exe, "-R", path), nil
}

// xdgRevealer opens the parent directory. There is no portable way to
// preselect the file, so only the folder is shown.
type xdgRevealer struct{ exe string }

func (r xdgRevealer) Name() string { return "xdg" }

func (r xdgRevealer) Command(path string) (*exec.Cmd, error) {
	parent, err := parentDir(path)
	if err != nil {
		return nil, err
	}
	return exec.Command(r.exe, parent), nil
}

// parentDir returns the directory containing path, or ErrNoParent for an
// empty path, "." or a root. The path is not cleaned: "a/link/../x.mp4"
// yields "a/link/..", leaving ".." to be resolved by the file system.
func parentDir(path string) (string, error) {
	trimmed := strings.TrimRight(path, separators)
	if trimmed == "" || trimmed == "." {
		return "", ErrNoParent
	}
	i := strings.LastIndexAny(trimmed, separators)
	if i < 0 {
		return ".", nil
	}
	parent := strings.TrimRight(trimmed[:i], separators)
	if parent == "" {
		return trimmed[:1], nil
	}
	return parent, nil
}

// RevealInFolder spawns the file manager and returns immediately. Launch
// errors are logged and dropped; callers always observe success.
func (p *Platform) RevealInFolder(path string) {
	cmd, err := p.revealer.Command(path)
	if err == nil {
		err = startProcess(cmd)
	}
	if err != nil {
		p.logger.Warn("Reveal in folder failed, ignoring",
			zap.String("strategy", p.revealer.Name()),
			zap.String("path", path),
			zap.Error(err))
		return
	}
	p.logger.Debug("Revealed in folder",
		zap.String("strategy", p.revealer.Name()),
		zap.String("path", path))
}
