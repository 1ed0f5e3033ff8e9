package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"aocnotify/internal/leaderboard"
	logx "aocnotify/pkg/logx"
)

// Result summarizes one run.
type Result struct {
	RunID    string
	Events   int
	Replaced bool
	Sent     bool
	Took     time.Duration
}

func (r Result) status() string {
	switch {
	case !r.Sent:
		return "no new stars"
	case r.Replaced:
		return fmt.Sprintf("%d new stars, overflow message sent", r.Events)
	default:
		return fmt.Sprintf("%d new stars sent", r.Events)
	}
}

// RunOnce loads the previous snapshot, fetches the current one and sends a
// notification for every completion that is new. The snapshot is persisted
// only after the send succeeded, so a failed send is retried next run.
func (a *App) RunOnce(ctx context.Context) (res Result, err error) {
	res.RunID = uuid.NewString()
	log := a.log.With(logx.String("run_id", res.RunID))
	start := a.now()
	defer func() { res.Took = a.now().Sub(start) }()

	prev, err := a.store.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("load snapshot: %w", err)
	}

	next, err := a.fetcher.Fetch(ctx)
	if err != nil {
		return res, err
	}

	events := leaderboard.Diff(prev, next)
	res.Events = len(events)
	if len(events) == 0 {
		log.Debug("no new stars")
		return res, nil
	}

	text, replaced := a.formatter.Render(next, events)
	res.Replaced = replaced
	if replaced {
		log.Warn("diff too large, sending overflow message", logx.Int("events", len(events)))
	}

	if err := a.sender.Send(ctx, text); err != nil {
		return res, fmt.Errorf("send via %s: %w", a.sender.Name(), err)
	}
	res.Sent = true

	if err := a.store.Save(ctx, next); err != nil {
		return res, fmt.Errorf("save snapshot: %w", err)
	}

	log.Info("notification sent",
		logx.Int("events", len(events)),
		logx.String("sender", a.sender.Name()),
		logx.Bool("replaced", replaced),
	)
	return res, nil
}

// safeRun converts a panic inside a run into an error so the loop survives.
func (a *App) safeRun(ctx context.Context) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("run panicked",
				logx.Any("panic", r),
				logx.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("run panicked: %v", r)
		}
	}()
	return a.RunOnce(ctx)
}

// Run executes a single run when no schedule is configured and returns its
// error. Otherwise it runs immediately and then at every scheduled instant
// until ctx is cancelled; failed runs are logged and do not stop the loop.
func (a *App) Run(ctx context.Context) error {
	if err := a.sd.Ready(); err != nil {
		a.log.Debug("sd_notify ready failed", logx.Err(err))
	}
	defer func() { _ = a.sd.Stopping() }()

	if a.sched == nil {
		res, err := a.RunOnce(ctx)
		if err != nil {
			a.log.Error("run failed", logx.String("run_id", res.RunID), logx.Err(err))
		}
		return err
	}

	a.log.Info("loop started")
	for {
		res, err := a.safeRun(ctx)
		switch {
		case ctx.Err() != nil:
			a.log.Info("loop stopped")
			return nil
		case err != nil:
			a.log.Error("run failed", logx.String("run_id", res.RunID), logx.Err(err))
			_ = a.sd.Status("last run failed: " + err.Error())
		default:
			_ = a.sd.Status(res.status())
		}

		now := a.now()
		next := a.sched.Next(now)
		if next.IsZero() {
			a.log.Warn("schedule has no further activations")
			return nil
		}
		a.log.Debug("next run scheduled", logx.Time("at", next))

		if !sleepUntil(ctx, next.Sub(now)) {
			a.log.Info("loop stopped")
			return nil
		}
	}
}

// sleepUntil waits for d and reports false if ctx ended first.
func sleepUntil(ctx context.Context, d time.Duration) bool {
	if d < 0 {
		d = 0
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
