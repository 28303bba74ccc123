package bus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

func useTempCacheDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func TestPaths(t *testing.T) {
	useTempCacheDir(t)

	sp, err := SockPath()
	if err != nil {
		t.Fatalf("SockPath() = %v", err)
	}
	if !strings.HasSuffix(sp, "cocovoice/"+SockName) {
		t.Errorf("SockPath() = %q, want suffix cocovoice/%s", sp, SockName)
	}

	pp, err := PidPath()
	if err != nil {
		t.Fatalf("PidPath() = %v", err)
	}
	if !strings.HasSuffix(pp, "cocovoice/"+PidName) {
		t.Errorf("PidPath() = %q, want suffix cocovoice/%s", pp, PidName)
	}
}

func TestSendCommandRoundTrip(t *testing.T) {
	useTempCacheDir(t)

	ln, err := Listen()
	if err != nil {
		t.Fatalf("Listen() = %v", err)
	}
	defer ln.Close()

	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		line, err := bufio.NewReader(c).ReadString('\n')
		if err != nil {
			return
		}
		fmt.Fprintf(c, "OK got=%c\n", line[0])
	}()

	resp, err := SendCommand('s')
	if err != nil {
		t.Fatalf("SendCommand() = %v", err)
	}
	if resp != "OK got=s\n" {
		t.Errorf("response = %q, want %q", resp, "OK got=s\n")
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	useTempCacheDir(t)

	ln, err := Listen()
	if err != nil {
		t.Fatalf("first Listen() = %v", err)
	}
	ln.Close()

	// Socket file may linger after close; a second Listen must still work.
	ln2, err := Listen()
	if err != nil {
		t.Fatalf("second Listen() = %v", err)
	}
	ln2.Close()
}

func TestPidFileLifecycle(t *testing.T) {
	useTempCacheDir(t)

	if err := CheckExistingDaemon(); err != nil {
		t.Fatalf("CheckExistingDaemon() with no pid file = %v", err)
	}

	if err := CreatePidFile(); err != nil {
		t.Fatalf("CreatePidFile() = %v", err)
	}

	pp, _ := PidPath()
	data, err := os.ReadFile(pp)
	if err != nil {
		t.Fatalf("read pid file: %v", err)
	}
	if string(data) != strconv.Itoa(os.Getpid()) {
		t.Errorf("pid file contains %q, want %d", data, os.Getpid())
	}

	// The recorded process is alive, so a second daemon must refuse.
	if err := CheckExistingDaemon(); err == nil {
		t.Error("CheckExistingDaemon() should fail while pid file names a live process")
	}

	if err := RemovePidFile(); err != nil {
		t.Fatalf("RemovePidFile() = %v", err)
	}
	if _, err := os.Stat(pp); !os.IsNotExist(err) {
		t.Error("pid file should be gone after RemovePidFile")
	}
}

func TestCheckExistingDaemonStalePid(t *testing.T) {
	useTempCacheDir(t)

	pp, err := PidPath()
	if err != nil {
		t.Fatalf("PidPath() = %v", err)
	}
	if err := os.MkdirAll(strings.TrimSuffix(pp, "/"+PidName), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	t.Run("dead pid", func(t *testing.T) {
		if err := os.WriteFile(pp, []byte("999999"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := CheckExistingDaemon(); err != nil {
			t.Errorf("CheckExistingDaemon() with dead pid = %v, want nil", err)
		}
		if _, err := os.Stat(pp); !os.IsNotExist(err) {
			t.Error("stale pid file should be removed")
		}
	})

	t.Run("garbage pid file", func(t *testing.T) {
		if err := os.WriteFile(pp, []byte("not-a-pid"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := CheckExistingDaemon(); err != nil {
			t.Errorf("CheckExistingDaemon() with garbage pid = %v, want nil", err)
		}
		if _, err := os.Stat(pp); !os.IsNotExist(err) {
			t.Error("unparsable pid file should be removed")
		}
	})
}
