package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/log"
	"github.com/mediaspawn/mediaspawn/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

var errNotStarted = errors.New("mpv is not started")

// MPV drives an external mpv process over its JSON-IPC socket.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{}
	mu         sync.Mutex
}

// NewMPV creates an MPV controller. The process starts with Start.
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Start launches mpv paused with target loaded.
func (m *MPV) Start(target, title string, extra ...string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.Mediaspawn, randomBytes))
	}

	m.cmd = exec.Command("mpv", mpvArgs(m.socketPath, safeTarget, sanitizeTitle(title), extra...)...)
	m.cmd.SysProcAttr = processGroup()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

func mpvArgs(socket, target, title string, extra ...string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + socket,
		"--force-media-title=" + title,
		"--title=" + title,
		"--force-window=yes",
		"--idle=yes",
		"--pause=yes",
		"--window-minimized=yes",
	}
	args = append(args, extra...)
	return append(args, target)
}

// Wait returns a channel closed when mpv exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Started reports whether Start succeeded at some point.
func (m *MPV) Started() bool {
	return m.cmd != nil && m.socketPath != ""
}

// IsRunning reports whether mpv answers IPC commands.
func (m *MPV) IsRunning() bool {
	if !m.Started() {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.Get("pid")
	return err == nil
}

// Get reads a property.
func (m *MPV) Get(property string) (interface{}, error) {
	if !m.Started() {
		return nil, errNotStarted
	}
	return m.sendCommand([]interface{}{"get_property", property})
}

// Set writes a property.
func (m *MPV) Set(property string, value interface{}) error {
	if !m.Started() {
		return errNotStarted
	}
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Close asks mpv to quit, then terminates and finally kills it if it does not exit in time.
func (m *MPV) Close() error {
	if !m.Started() {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	for _, stop := range []func(*exec.Cmd) error{terminateProcess, killProcess} {
		select {
		case <-m.exited:
		case <-time.After(quitTimeout):
			_ = stop(m.cmd)
			continue
		}
		break
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// sanitizeMediaTarget rejects anything that mpv could read as a flag.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", errors.New("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", errors.New("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", errors.New("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}

// MPVBackend plays HTML media in an mpv window. Hidden surfaces minimize the window.
type MPVBackend struct {
	mpv *MPV
}

// NewMPVBackend returns a backend whose process starts on Load.
func NewMPVBackend() *MPVBackend {
	return &MPVBackend{mpv: NewMPV()}
}

func (b *MPVBackend) Load(source string) error {
	return b.mpv.Start(source, source)
}

func (b *MPVBackend) SetPaused(paused bool) error {
	if !b.mpv.Started() {
		return nil
	}
	return b.mpv.Set("pause", paused)
}

func (b *MPVBackend) SetControls(enabled bool) error {
	if !b.mpv.Started() {
		return nil
	}
	return b.mpv.Set("osc", enabled)
}

func (b *MPVBackend) Resize(width, height int, visible bool) error {
	if !b.mpv.Started() {
		return nil
	}
	if !visible {
		return b.mpv.Set("window-minimized", true)
	}
	if err := b.mpv.Set("geometry", fmt.Sprintf("%dx%d", width, height)); err != nil {
		return err
	}
	return b.mpv.Set("window-minimized", false)
}

func (b *MPVBackend) Close() error {
	return b.mpv.Close()
}
