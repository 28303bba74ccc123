// Package bus is the control channel between the CLI and a running daemon:
// a unix socket carrying single-byte commands, plus a pid file so only one
// daemon runs per user.
package bus

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

const (
	SockName = "control.sock"
	PidName  = "cocovoice.pid"
	ProtoVer = "0.1"
)

// runtimeDir is where the socket and pid file live, under the user cache
// directory. Created lazily with owner-only permissions.
func runtimeDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(cache, "cocovoice"), nil
}

// SockPath returns the control socket path, typically
// ~/.cache/cocovoice/control.sock.
func SockPath() (string, error) {
	dir, err := runtimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SockName), nil
}

// PidPath returns the pid file path next to the socket.
func PidPath() (string, error) {
	dir, err := runtimeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, PidName), nil
}

// Listen binds the control socket. A socket file left over from a previous
// run is removed first; the caller is expected to have checked for a live
// daemon via CheckExistingDaemon before getting here.
func Listen() (net.Listener, error) {
	path, err := SockPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create runtime dir: %w", err)
	}
	_ = os.Remove(path)
	return net.Listen("unix", path)
}

// Dial connects to a running daemon's control socket.
func Dial() (net.Conn, error) {
	path, err := SockPath()
	if err != nil {
		return nil, err
	}
	return net.Dial("unix", path)
}

// SendCommand performs one request/response exchange: a command byte plus
// newline out, one response line back.
func SendCommand(cmd byte) (string, error) {
	conn, err := Dial()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte{cmd, '\n'}); err != nil {
		return "", err
	}
	return bufio.NewReader(conn).ReadString('\n')
}

// CheckExistingDaemon returns an error when the pid file names a process
// that is still alive. A pid file for a dead or unparsable pid is stale
// and is removed so it cannot confuse the next check.
func CheckExistingDaemon() error {
	path, err := PidPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	pid, err := strconv.Atoi(string(data))
	if err == nil && pidAlive(pid) {
		return fmt.Errorf("daemon already running with PID %d", pid)
	}

	_ = os.Remove(path)
	return nil
}

// pidAlive sends signal 0, which delivers nothing but fails when the pid
// does not exist.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}

// CreatePidFile records this process as the running daemon.
func CreatePidFile() error {
	path, err := PidPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600)
}

// RemovePidFile releases the daemon slot on shutdown.
func RemovePidFile() error {
	path, err := PidPath()
	if err != nil {
		return err
	}
	return os.Remove(path)
}
