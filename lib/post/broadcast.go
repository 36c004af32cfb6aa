package post

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ysmood/goob"
)

type endOfStream struct{}

// Broadcast fans every published post out to a set of sinks. Each sink runs in
// its own goroutine and sees posts in publish order. A failing sink stops
// receiving but does not affect the others.
type Broadcast struct {
	ob     *goob.Observable
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	errs   []error
	closed bool
}

// NewBroadcast subscribes sinks and returns the broadcast. Cancelling ctx
// stops delivery.
func NewBroadcast(ctx context.Context, sinks ...Sink) *Broadcast {
	ctx, cancel := context.WithCancel(ctx)
	b := &Broadcast{ob: goob.New(ctx), cancel: cancel}

	for i, s := range sinks {
		events := b.ob.Subscribe(ctx)
		b.wg.Add(1)
		go b.drain(i, s, events)
	}
	return b
}

func (b *Broadcast) drain(i int, s Sink, events <-chan goob.Event) {
	defer b.wg.Done()
	failed := false
	for e := range events {
		switch v := e.(type) {
		case endOfStream:
			return
		case Post:
			if failed {
				continue
			}
			if err := s.Write(v); err != nil {
				failed = true
				b.mu.Lock()
				b.errs = append(b.errs, fmt.Errorf("post: sink %d: %w", i, err))
				b.mu.Unlock()
			}
		}
	}
}

// Publish queues p for every sink. It never blocks.
func (b *Broadcast) Publish(p Post) {
	b.ob.Publish(p)
}

// Close waits until every sink has handled all published posts and returns
// the joined sink errors.
func (b *Broadcast) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.ob.Publish(endOfStream{})
	b.wg.Wait()
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	return errors.Join(b.errs...)
}
