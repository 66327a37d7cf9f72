package commands

import (
	"context"
	"time"
)

// Sleep blocks for the given number of seconds or until ctx is done.
func Sleep(ctx context.Context, seconds uint64) error {
	timer := time.NewTimer(time.Duration(seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
