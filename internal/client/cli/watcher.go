package cli

import (
	"context"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// StartOnlineStatusWatcher pings the node every interval and calls notify on
// the first result and on every change after that. A non-positive interval
// checks once and returns.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, p pinger, interval time.Duration, notify func(online bool)) {
	var (
		known  bool
		online bool
	)
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := p.Ping(pctx)
		cancel()

		now := err == nil
		if known && now == online {
			return
		}
		known, online = true, now
		if now {
			a.logger.Info(ctx, "node online")
		} else {
			a.logger.Warn(ctx, "node offline", "error", err)
		}
		notify(now)
	}

	check()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
