package tweetgrab

import (
	"context"
	"time"
)

const pollInterval = 250 * time.Millisecond

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// poll runs check every interval until it reports done, fails, or timeout passes.
// It returns false with a nil error on timeout.
func poll(ctx context.Context, timeout, interval time.Duration, check func() (bool, error)) (bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		done, err := check()
		if err != nil || done {
			return done, err
		}

		left := time.Until(deadline)
		if left <= 0 {
			return false, nil
		}
		if left > interval {
			left = interval
		}
		if err := sleep(ctx, left); err != nil {
			return false, err
		}
	}
}

// settle waits up to max for new results to render. With a positive window it
// returns as soon as count reports the same non zero value for that long.
// Failed counts are treated as "still loading".
func settle(ctx context.Context, max, window, interval time.Duration, count func() (int, error)) (int, error) {
	if window <= 0 {
		if err := sleep(ctx, max); err != nil {
			return 0, err
		}
		n, _ := count()
		return n, nil
	}

	last, since := -1, time.Now()
	_, err := poll(ctx, max, interval, func() (bool, error) {
		n, err := count()
		if err != nil {
			return false, nil
		}
		if n != last {
			last, since = n, time.Now()
			return false, nil
		}
		return n > 0 && time.Since(since) >= window, nil
	})
	if last < 0 {
		last = 0
	}
	return last, err
}
