package events

import "context"

type Kind string

const (
	// Resize asks for the surface to be re-fitted and every star recreated.
	Resize Kind = "resize"
	Exit   Kind = "exit"
)

// Event is a host notification. Width and Height are only meaningful for
// Resize; zeros mean "re-read the viewport".
type Event struct {
	Kind   Kind
	Width  int
	Height int
}

// Source produces host events until it is stopped.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

// Queue is a Source fed by Push, for events that originate in-process.
type Queue struct {
	ch chan Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{ch: make(chan Event, size)}
}

func (q *Queue) Start(ctx context.Context) error { return nil }
func (q *Queue) Stop() error                     { return nil }
func (q *Queue) Events() <-chan Event            { return q.ch }

// Push delivers ev without blocking; it reports false when the queue is full.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Merge forwards events from every source onto one channel until ctx is
// done. The returned channel is closed once all forwarders have exited.
func Merge(ctx context.Context, sources ...Source) <-chan Event {
	out := make(chan Event)
	done := make(chan struct{}, len(sources))
	for _, src := range sources {
		in := src.Events()
		go func() {
			defer func() { done <- struct{}{} }()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-in:
					if !ok {
						return
					}
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	go func() {
		for range sources {
			<-done
		}
		close(out)
	}()
	return out
}
