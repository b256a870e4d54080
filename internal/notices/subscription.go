package notices

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// Source yields notices from the daemon. *snapd.Client satisfies it.
type Source interface {
	Notices(ctx context.Context, after time.Time, wait time.Duration) ([]snapd.Notice, error)
}

// Handler receives each delivered notice. firstRun is true for notices from
// the initial listing after a (re)start, which report history rather than
// fresh events.
type Handler func(notice snapd.Notice, firstRun bool)

// Subscription is the self-healing notice stream consumer.
type Subscription struct {
	newSource func() Source
	handler   Handler
	logger    *slog.Logger
	wait      time.Duration
	cooldown  time.Duration

	healthy  atomic.Bool
	restarts atomic.Int64
}

// NewSubscription constructs a subscription. newSource is invoked for every
// (re)connect so a stale client is never reused across a snapd restart.
func NewSubscription(newSource func() Source, handler Handler, logger *slog.Logger, wait, cooldown time.Duration) *Subscription {
	return &Subscription{
		newSource: newSource,
		handler:   handler,
		logger:    logging.Default(logger).With(logging.String(logging.FieldComponent, "notices")),
		wait:      wait,
		cooldown:  cooldown,
	}
}

// Healthy reports whether the last poll succeeded.
func (s *Subscription) Healthy() bool {
	return s.healthy.Load()
}

// Restarts returns how many times the subscription has been rebuilt.
func (s *Subscription) Restarts() int64 {
	return s.restarts.Load()
}

// Run consumes the stream until the context is canceled. It never returns an
// error: stream failures are logged and answered with a rebuild after the
// cooldown.
func (s *Subscription) Run(ctx context.Context) {
	for {
		err := s.consume(ctx)
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return
		}
		s.logger.Error("notice stream failed, restarting subscription",
			logging.Error(err),
			logging.Duration("cooldown", s.cooldown),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cooldown):
		}
		s.restarts.Add(1)
	}
}

// consume drives one subscription lifetime: a fresh source, a fresh cursor,
// and a fresh first-run window. Returns the error that ended it.
func (s *Subscription) consume(ctx context.Context) error {
	source := s.newSource()
	var after time.Time
	firstRun := true

	for {
		batch, err := source.Notices(ctx, after, s.wait)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			s.healthy.Store(false)
			return err
		}
		s.healthy.Store(true)

		for _, notice := range batch {
			if notice.LastRepeated.After(after) {
				after = notice.LastRepeated
			}
			s.handler(notice, firstRun)
		}
		firstRun = false
	}
}
