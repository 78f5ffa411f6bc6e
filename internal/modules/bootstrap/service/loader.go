package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Refresher performs one full instance load without telling the user about failures;
// ReportLoadFailure is called once the loader gives up.
type Refresher interface {
	Reload(ctx context.Context) error
	ReportLoadFailure(err error)
}

// Loader fills the table once at startup. It retries a failed load a few times
// with a growing pause; after that the table stays empty until the next action refetches.
type Loader struct {
	r        Refresher
	log      *zap.Logger
	attempts int
	backoff  time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewLoader(r Refresher, log *zap.Logger) *Loader {
	return &Loader{
		r:        r,
		log:      log,
		attempts: 3,
		backoff:  time.Second,
		sleep:    sleepCtx,
	}
}

// Load waits backoff, 2*backoff, ... between attempts and never after the last one.
func (l *Loader) Load(ctx context.Context) error {
	var err error
	for i := 0; i < l.attempts; i++ {
		if i > 0 {
			if serr := l.sleep(ctx, l.backoff*time.Duration(i)); serr != nil {
				return serr
			}
		}
		if err = l.r.Reload(ctx); err == nil {
			return nil
		}
		l.log.Warn("initial instance load failed", zap.Int("attempt", i+1), zap.Error(err))
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	l.r.ReportLoadFailure(err)
	return fmt.Errorf("load instances after %d attempts: %w", l.attempts, err)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
