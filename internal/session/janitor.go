package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartJanitor sweeps idle sessions every interval until the returned scheduler is
// shut down.
func StartJanitor(r *Registry, interval time.Duration, l *slog.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("session janitor: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if n := r.Sweep(); n > 0 {
				l.Info("sessions_swept", "ended", n, "active", r.Len())
			}
		}),
		gocron.WithName("session-janitor"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("session janitor: %w", err)
	}

	s.Start()
	return s, nil
}
