package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"propdesk/utils"
)

// Pruner is a session registry the reaper can sweep.
type Pruner interface {
	Prune(idle time.Duration, now time.Time) int
	Len() int
}

// SessionReaper closes wizard and assistant sessions that have been idle
// for longer than the configured timeout.
type SessionReaper struct {
	registries map[string]Pruner
	idle       time.Duration
	interval   time.Duration
	now        func() time.Time
	logger     *logrus.Entry
}

func NewSessionReaper(idle time.Duration, registries map[string]Pruner) *SessionReaper {
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return &SessionReaper{
		registries: registries,
		idle:       idle,
		interval:   interval,
		now:        time.Now,
		logger:     utils.Component("REAPER"),
	}
}

func (sr *SessionReaper) Start(ctx context.Context) {
	sr.logger.Infof("Starting session reaper (idle timeout %s)...", sr.idle)
	ticker := time.NewTicker(sr.interval)

	for {
		select {
		case <-ticker.C:
			sr.Sweep()
		case <-ctx.Done():
			sr.logger.Info("Stopping session reaper...")
			ticker.Stop()
			return
		}
	}
}

// Sweep prunes every registry once and returns the number of sessions
// closed per registry.
func (sr *SessionReaper) Sweep() map[string]int {
	now := sr.now()
	removed := make(map[string]int, len(sr.registries))
	for name, r := range sr.registries {
		n := r.Prune(sr.idle, now)
		removed[name] = n
		if n > 0 {
			sr.logger.WithFields(logrus.Fields{
				"registry":  name,
				"removed":   n,
				"remaining": r.Len(),
			}).Info("Reaped idle sessions")
		}
	}
	return removed
}
