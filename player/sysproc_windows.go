//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

func processGroup() *syscall.SysProcAttr {
	return nil
}

// terminateProcess has no graceful variant on windows.
func terminateProcess(cmd *exec.Cmd) error {
	return killProcess(cmd)
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
