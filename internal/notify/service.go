package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"snapwatch/internal/config"
	"snapwatch/internal/logging"
	"snapwatch/internal/monitor"
	"snapwatch/internal/snapd"
)

const userAgent = "snapwatch/0.1.0"

// Service is the push notification surface. It doubles as the monitor's
// event sink.
type Service interface {
	monitor.Sink
	// TestNotification sends a synchronous test message so the CLI can
	// verify the configured topic.
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config, logger *slog.Logger) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.Default(logger).With(logging.String(logging.FieldComponent, "notify")),
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func (n *ntfyService) PendingRefresh(snaps []snapd.Snap) {
	names := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		names = append(names, snap.Name)
	}
	message := fmt.Sprintf("Updates pending for: %s\nClose the applications to let them refresh.", strings.Join(names, ", "))
	if len(names) == 1 {
		message = fmt.Sprintf("Update pending for %s\nClose the application to let it refresh.", names[0])
	}
	n.deliver(payload{
		title:   "Snapwatch - Updates Pending",
		message: message,
		tags:    []string{"snapwatch", "refresh", "pending"},
	})
}

func (n *ntfyService) PendingRefreshForced(snap snapd.Snap, remaining time.Duration, urgent bool) {
	if remaining < 0 {
		remaining = 0
	}
	data := payload{
		title:   "Snapwatch - Forced Update Soon",
		message: fmt.Sprintf("%s will be forced to update in %s\nClose it now to update on your terms.", snap.Name, remaining.Round(time.Minute)),
		tags:    []string{"snapwatch", "refresh", "forced"},
	}
	if urgent {
		data.priority = "high"
	}
	n.deliver(data)
}

func (n *ntfyService) RefreshComplete(snap *snapd.Snap, name string) {
	message := fmt.Sprintf("%s has been updated. Restart it to use the new version.", name)
	if snap != nil && snap.Version != "" {
		message = fmt.Sprintf("%s has been updated to %s. Restart it to use the new version.", name, snap.Version)
	}
	n.deliver(payload{
		title:   "Snapwatch - Update Complete",
		message: message,
		tags:    []string{"snapwatch", "refresh", "completed"},
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "Snapwatch - Test",
		message:  "Notification system test",
		tags:     []string{"snapwatch", "test"},
		priority: "low",
	})
}

// deliver sends in the background; sink callbacks run on the monitor loop
// and must not block on HTTP.
func (n *ntfyService) deliver(data payload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
		defer cancel()
		if err := n.send(ctx, data); err != nil {
			n.logger.Warn("notification delivery failed",
				logging.String("title", data.title),
				logging.Error(err),
			)
		}
	}()
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) PendingRefresh([]snapd.Snap)                          {}
func (noopService) PendingRefreshForced(snapd.Snap, time.Duration, bool) {}
func (noopService) RefreshComplete(*snapd.Snap, string)                  {}
func (noopService) TestNotification(context.Context) error               { return nil }
