package client

import (
	"sync"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"
)

// WatchJobs refreshes the local job view on a jittered interval while the
// jobs view is active. The returned stop function must be called on view
// teardown; a watcher left running is a goroutine leak. Stopping twice is
// safe.
func (s *SyncController) WatchJobs(interval time.Duration) (stop func()) {
	ticker := jitterbug.New(interval, &jitterbug.Norm{Stdev: interval / 10})
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := s.RefreshJobs(); err != nil {
					s.log.Warn("job poll refresh failed", zap.Error(err))
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
