package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snapwatch/internal/daemon"
	"snapwatch/internal/ipc"
	"snapwatch/internal/logging"
	"snapwatch/internal/testsupport"
)

func TestIPCServerClient(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	logger := logging.NewNop()
	d, err := daemon.New(cfg, store, nil, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.StateDir, "snapwatch.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(func() {
		srv.Close()
	})

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	startResp, err := client.Start()
	if err != nil {
		t.Fatalf("Start RPC failed: %v", err)
	}
	if !startResp.Started {
		t.Fatalf("expected Started=true, message=%s", startResp.Message)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if !status.Running {
		t.Fatal("expected daemon to be running")
	}
	if !strings.HasSuffix(status.PrefsDBPath, "prefs.db") {
		t.Fatalf("unexpected prefs db path: %s", status.PrefsDBPath)
	}
	if status.SnapdSocket != cfg.SnapdSocketPath() {
		t.Fatalf("snapd socket = %q, want %q", status.SnapdSocket, cfg.SnapdSocketPath())
	}

	ignoreResp, err := client.Ignore("firefox", true)
	if err != nil {
		t.Fatalf("Ignore failed: %v", err)
	}
	if !ignoreResp.Ignored || ignoreResp.Snap != "firefox" {
		t.Fatalf("unexpected ignore response: %#v", ignoreResp)
	}
	if _, err := client.Ignore("", true); err == nil {
		t.Fatal("Ignore with empty snap name should fail")
	}

	listResp, err := client.IgnoredList()
	if err != nil {
		t.Fatalf("IgnoredList failed: %v", err)
	}
	if len(listResp.Snaps) != 1 || listResp.Snaps[0] != "firefox" {
		t.Fatalf("ignored list = %v, want [firefox]", listResp.Snaps)
	}

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	foundIgnored := false
	for _, snap := range status.Snaps {
		if snap.Name == "firefox" && snap.Ignored {
			foundIgnored = true
		}
	}
	if !foundIgnored {
		t.Fatalf("status snaps missing ignored firefox: %+v", status.Snaps)
	}

	unignoreResp, err := client.Ignore("firefox", false)
	if err != nil {
		t.Fatalf("Unignore failed: %v", err)
	}
	if unignoreResp.Ignored {
		t.Fatalf("unexpected unignore response: %#v", unignoreResp)
	}
	listResp, err = client.IgnoredList()
	if err != nil {
		t.Fatalf("IgnoredList failed: %v", err)
	}
	if len(listResp.Snaps) != 0 {
		t.Fatalf("ignored list after clear = %v, want empty", listResp.Snaps)
	}

	notifyResp, err := client.TestNotification()
	if err != nil {
		t.Fatalf("TestNotification failed: %v", err)
	}
	if notifyResp.Sent {
		t.Fatal("notification should not send without a configured topic")
	}
	if notifyResp.Message == "" {
		t.Fatal("expected notification message")
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC failed: %v", err)
	}
	if !stopResp.Stopped {
		t.Fatal("expected stop response to be true")
	}

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}
