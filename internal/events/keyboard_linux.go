//go:build linux

package events

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyEsc = 1
	keyF4  = 62
	keyF5  = 63

	keyPressed = 1
)

// KeyboardSource watches Linux evdev devices under /dev/input/event*:
// Esc or F4 requests Exit, F5 requests a Resize (full reinitialization).
//
// It is best-effort: without readable input devices it logs and stays silent.
type KeyboardSource struct {
	Glob   string
	Logger logger

	ch     chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKeyboardSource(l logger) *KeyboardSource {
	return &KeyboardSource{Glob: "/dev/input/event*", Logger: l, ch: make(chan Event, 4)}
}

func (k *KeyboardSource) Events() <-chan Event { return k.ch }

func (k *KeyboardSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(k.Glob)
	if err != nil || len(paths) == 0 {
		if k.Logger != nil {
			k.Logger.Infof("input", "no evdev devices found under %s", k.Glob)
		}
		return nil
	}

	ctx, k.cancel = context.WithCancel(ctx)
	for _, path := range paths {
		k.wg.Add(1)
		go func() {
			defer k.wg.Done()
			k.watch(ctx, path)
		}()
	}
	return nil
}

func (k *KeyboardSource) Stop() error {
	if k.cancel != nil {
		k.cancel()
	}
	k.wg.Wait()
	return nil
}

// input_event = timeval + u16 type + u16 code + s32 value.
func eventLayout() (tvSize, eventSize int) {
	tvSize = binary.Size(unix.Timeval{})
	eventSize = tvSize + 2 + 2 + 4
	if tvSize <= 0 {
		return 16, 24
	}
	return tvSize, eventSize
}

func (k *KeyboardSource) watch(ctx context.Context, path string) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	tvSize, eventSize := eventLayout()
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			if typ != evKey || value != keyPressed {
				continue
			}
			if ev, ok := keyEvent(code); ok {
				k.emit(ctx, ev)
			}
		}
	}
}

func keyEvent(code uint16) (Event, bool) {
	switch code {
	case keyEsc, keyF4:
		return Event{Kind: Exit}, true
	case keyF5:
		return Event{Kind: Resize}, true
	default:
		return Event{}, false
	}
}

func (k *KeyboardSource) emit(ctx context.Context, ev Event) {
	if k.Logger != nil {
		k.Logger.Infof("input", "key event: %s", ev.Kind)
	}
	select {
	case k.ch <- ev:
	case <-ctx.Done():
	}
}
