// Package daemonrun boots the snapwatch daemon process: logger, preference
// store, notification service, IPC server, and the monitor lifecycle.
package daemonrun

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/google/uuid"

	"snapwatch/internal/config"
	"snapwatch/internal/daemon"
	"snapwatch/internal/ipc"
	"snapwatch/internal/logging"
	"snapwatch/internal/notify"
	"snapwatch/internal/prefs"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
}

// Run starts the snapwatch daemon runtime loop and blocks until the context
// is canceled or a termination signal arrives.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "snapwatch.log")
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	sessionID := uuid.NewString()
	logger = logger.With(logging.String(logging.FieldSessionID, sessionID))

	pidPath := filepath.Join(cfg.Paths.StateDir, "snapwatchd.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	store, err := prefs.Open(cfg)
	if err != nil {
		logger.Error("open preference store", logging.Error(err))
		return err
	}
	defer store.Close()

	notifier := notify.NewService(cfg, logger)

	d, err := daemon.New(cfg, store, notifier, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(signalCtx, cfg.SocketPath(), d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logger.Warn("daemon start failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "daemon_start_failed"),
			logging.String(logging.FieldErrorHint, "check that no other snapwatchd instance holds the lock"),
		)
	}

	logger.Info("snapwatch daemon running",
		logging.String("snapd_socket", cfg.SnapdSocketPath()),
		logging.String("ipc_socket", cfg.SocketPath()),
	)

	<-signalCtx.Done()
	logger.Info("snapwatch daemon shutting down")
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
