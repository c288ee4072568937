//go:build windows

package platform

import (
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

const selectPrefix = "/select,"

// detach runs the child without the host's console and outside its process
// group, so closing the host does not take the file manager down with it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
		CmdLine:       commandLine(cmd.Args),
	}
}

// commandLine quotes args the usual way, except that explorer only accepts
// /select when the quotes wrap the path alone: /select,"C:\a b\c.mp4".
func commandLine(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, selectPrefix) {
			parts[i] = selectPrefix + `"` + strings.TrimPrefix(arg, selectPrefix) + `"`
			continue
		}
		parts[i] = syscall.EscapeArg(arg)
	}
	return strings.Join(parts, " ")
}
