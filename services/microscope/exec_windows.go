//go:build windows

package microscope

import (
	"os/exec"
	"syscall"
)

const createNewConsole = 0x00000010

// detach gives the process its own console window.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNewConsole}
}
