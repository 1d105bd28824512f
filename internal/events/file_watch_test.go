package events

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func readSize(path string) (int, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}
	var w, h int
	if _, err := fmt.Sscanf(string(data), "%dx%d", &w, &h); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func TestFileWatchEmitsResizeOnSizeChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "size.txt")
	require.NoError(t, os.WriteFile(path, []byte("640x480"), 0644))

	src := NewFileWatchSource(path, readSize, nil)
	require.NoError(t, src.Start(context.Background()))
	defer func() { require.NoError(t, src.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("800x600"), 0644))
	select {
	case ev := <-src.Events():
		assert.Equal(t, Event{Kind: Resize, Width: 800, Height: 600}, ev)
	case <-time.After(3 * time.Second):
		t.Fatal("no resize event")
	}

	// Rewriting the same size stays quiet.
	require.NoError(t, os.WriteFile(path, []byte("800x600"), 0644))
	select {
	case ev := <-src.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(4 * fileWatchDebounce):
	}
}

func TestFileWatchMissingDirectory(t *testing.T) {
	src := NewFileWatchSource(filepath.Join(t.TempDir(), "nope", "size.txt"), readSize, nil)
	assert.Error(t, src.Start(context.Background()))
	assert.NoError(t, src.Stop())
}
