package events

import (
	"context"
	"os"
	"os/signal"
	"sync"
)

// SignalSource turns process signals into events: resize signals
// (SIGWINCH on unix) become Resize, interrupt and terminate become Exit.
type SignalSource struct {
	ch   chan Event
	sig  chan os.Signal
	once sync.Once
	stop chan struct{}
}

func NewSignalSource() *SignalSource {
	return &SignalSource{ch: make(chan Event, 4), sig: make(chan os.Signal, 4), stop: make(chan struct{})}
}

func (s *SignalSource) Start(ctx context.Context) error {
	signal.Notify(s.sig, watchedSignals...)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case sig := <-s.sig:
				ev := Event{Kind: Exit}
				if isResizeSignal(sig) {
					ev = Event{Kind: Resize}
				}
				select {
				case s.ch <- ev:
				default:
				}
			}
		}
	}()
	return nil
}

func (s *SignalSource) Stop() error {
	s.once.Do(func() {
		signal.Stop(s.sig)
		close(s.stop)
	})
	return nil
}

func (s *SignalSource) Events() <-chan Event { return s.ch }
