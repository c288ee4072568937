//go:build unix

package platform

import (
	"os/exec"
	"syscall"
)

// detach starts the child in its own session so it survives the host
// being killed together with its process group.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
