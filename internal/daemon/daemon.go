package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"snapwatch/internal/config"
	"snapwatch/internal/desktop"
	"snapwatch/internal/dialogs"
	"snapwatch/internal/launcher"
	"snapwatch/internal/logging"
	"snapwatch/internal/monitor"
	"snapwatch/internal/notices"
	"snapwatch/internal/notify"
	"snapwatch/internal/prefs"
	"snapwatch/internal/snapd"
)

// Daemon coordinates the refresh monitoring services and enforces
// single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *prefs.Store
	notifier notify.Service
	logPath  string

	lockPath string
	lock     *flock.Flock

	mu           sync.Mutex
	running      bool
	monitor      *monitor.Monitor
	subscription *notices.Subscription
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// Status represents daemon runtime information.
type Status struct {
	Running              bool
	PID                  int
	LockFilePath         string
	PrefsDBPath          string
	SnapdSocket          string
	SubscriptionHealthy  bool
	SubscriptionRestarts int64
	Monitor              monitor.Status
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *prefs.Store, notifier notify.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and preference store")
	}
	if notifier == nil {
		notifier = notify.NewService(cfg, logger)
	}

	lockPath := filepath.Join(cfg.Paths.StateDir, "snapwatchd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.Default(logger).With(logging.String(logging.FieldComponent, "daemon")),
		store:    store,
		notifier: notifier,
		logPath:  filepath.Join(cfg.Paths.LogDir, "snapwatch.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the monitor and the notice
// subscription. Persisted per-snap preferences are replayed into the fresh
// monitor so suppression survives restarts.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another snapwatch daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)

	lookup := desktop.NewLookup(d.cfg.Snapd.DesktopDir, d.logger)
	dialogMgr := dialogs.NewManager(dialogs.NewLogPresenter(d.logger))
	badge := launcher.NewLogEntry(d.logger)
	sink := monitor.MultiSink{monitor.NewLogSink(d.logger), d.notifier}
	mon := monitor.New(d.cfg, snapd.NewClientFromConfig(d.cfg), lookup, badge, dialogMgr, sink, d.logger)

	sub := notices.NewSubscription(
		func() notices.Source { return snapd.NewClientFromConfig(d.cfg) },
		mon.HandleNotice,
		d.logger,
		time.Duration(d.cfg.Snapd.NoticeWait)*time.Second,
		time.Duration(d.cfg.Monitor.RestartCooldownMillis)*time.Millisecond,
	)

	d.wg.Add(2)
	go func() {
		defer d.wg.Done()
		mon.Run(runCtx)
	}()
	go func() {
		defer d.wg.Done()
		sub.Run(runCtx)
	}()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := lookup.Watch(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Debug("desktop entry watch unavailable", logging.Error(err))
		}
	}()

	ignored, err := d.store.IgnoredSnaps(runCtx)
	if err != nil {
		d.logger.Warn("could not replay persisted preferences", logging.Error(err))
	}
	for _, name := range ignored {
		mon.IgnoreSnap(name, true)
	}

	d.monitor = mon
	d.subscription = sub
	d.cancel = cancel
	d.running = true
	d.logger.Info("snapwatch daemon started",
		logging.String("lock", d.lockPath),
		logging.String("snapd_socket", d.cfg.SnapdSocketPath()),
	)
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	cancel := d.cancel
	d.monitor = nil
	d.subscription = nil
	d.cancel = nil
	d.running = false
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.logger.Info("snapwatch daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	d.mu.Lock()
	mon := d.monitor
	sub := d.subscription
	running := d.running
	d.mu.Unlock()

	status := Status{
		Running:      running,
		PID:          os.Getpid(),
		LockFilePath: d.lockPath,
		PrefsDBPath:  d.store.Path(),
		SnapdSocket:  d.cfg.SnapdSocketPath(),
	}
	if sub != nil {
		status.SubscriptionHealthy = sub.Healthy()
		status.SubscriptionRestarts = sub.Restarts()
	}
	if mon != nil {
		status.Monitor = mon.Snapshot()
	}
	return status
}

// SetIgnored persists the snap's suppression flag and applies it to the
// live monitor when one is running.
func (d *Daemon) SetIgnored(ctx context.Context, snapName string, ignored bool) error {
	snapName = strings.TrimSpace(snapName)
	if snapName == "" {
		return errors.New("snap name is required")
	}
	if err := d.store.SetIgnored(ctx, snapName, ignored); err != nil {
		return err
	}

	d.mu.Lock()
	mon := d.monitor
	d.mu.Unlock()
	if mon != nil {
		mon.IgnoreSnap(snapName, ignored)
	}
	d.logger.Info("snap suppression updated",
		logging.String(logging.FieldSnap, snapName),
		logging.Bool("ignored", ignored),
	)
	return nil
}

// IgnoredSnaps lists the snaps whose notifications are suppressed.
func (d *Daemon) IgnoredSnaps(ctx context.Context) ([]string, error) {
	return d.store.IgnoredSnaps(ctx)
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, "failed to send notification", err
	}
	return true, "test notification sent", nil
}
