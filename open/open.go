// Package open hands plan files and links to the desktop.
package open

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	windows = "windows"
	darwin  = "darwin"
	linux   = "linux"
	android = "android"
)

// ErrUnsupportedOS is returned where no default handler is known.
var ErrUnsupportedOS = errors.New("unsupported OS")

// Start opens input, a path or URL, with the default handler without waiting.
func Start(input string) error {
	cmd, err := command(runtime.GOOS, input)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// Edit opens path in editor and waits until it exits. An empty editor uses
// $VISUAL, then $EDITOR, then the default handler.
func Edit(path, editor string) error {
	if editor == "" {
		editor = firstEnv("VISUAL", "EDITOR")
	}

	if editor == "" {
		return Start(path)
	}

	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	return cmd.Run()
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func command(goos, input string) (*exec.Cmd, error) {
	switch goos {
	case windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	case darwin:
		return exec.Command("open", input), nil
	case linux:
		return exec.Command("xdg-open", input), nil
	case android:
		return exec.Command("termux-open", input), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
	}
}
