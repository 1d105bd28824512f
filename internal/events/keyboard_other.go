//go:build !linux

package events

import "context"

// KeyboardSource reads evdev devices; elsewhere it never fires.
type KeyboardSource struct {
	ch chan Event
}

func NewKeyboardSource(l logger) *KeyboardSource { return &KeyboardSource{ch: make(chan Event)} }

func (k *KeyboardSource) Start(ctx context.Context) error { return nil }
func (k *KeyboardSource) Stop() error                     { return nil }
func (k *KeyboardSource) Events() <-chan Event            { return k.ch }
