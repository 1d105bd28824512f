//go:build linux

package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		code uint16
		want Event
		ok   bool
	}{
		{keyEsc, Event{Kind: Exit}, true},
		{keyF4, Event{Kind: Exit}, true},
		{keyF5, Event{Kind: Resize}, true},
		{30, Event{}, false},
	}
	for _, tt := range tests {
		got, ok := keyEvent(tt.code)
		assert.Equal(t, tt.ok, ok, "code %d", tt.code)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
	}
}

func TestKeyboardSourceWithoutDevices(t *testing.T) {
	k := NewKeyboardSource(nil)
	k.Glob = t.TempDir() + "/event*"
	assert.NoError(t, k.Start(context.Background()))
	assert.NoError(t, k.Stop())
}

func TestEventLayout(t *testing.T) {
	tv, size := eventLayout()
	assert.Equal(t, tv+8, size)
}
