package state

import (
	"sync"
	"time"
)

type Phase int

const (
	BOOTING Phase = iota
	RUNNING
	// IDLE means there was no surface to draw on; the host shows nothing.
	IDLE
	STOPPED
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case RUNNING:
		return "running"
	case IDLE:
		return "idle"
	case STOPPED:
		return "stopped"
	default:
		return "unknown"
	}
}

type FrameInfo struct {
	Mode         string
	Frames       uint64
	Stars        int
	ActiveFlares int
	Width        int
	Height       int
}

type State struct {
	Phase     Phase
	Label     string
	Frame     FrameInfo
	UpdatedAt time.Time
}

// Store is the hand-off point between the render goroutine and readers
// such as HTTP handlers.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.state.UpdatedAt = time.Now()
	store.mu.Unlock()
}

// SetLabel records the mode label the configuration was resolved from.
func (store *Store) SetLabel(label string) {
	store.mu.Lock()
	store.state.Label = label
	store.mu.Unlock()
}

func (store *Store) UpdateFrame(frame FrameInfo) {
	store.mu.Lock()
	store.state.Frame = frame
	store.state.UpdatedAt = time.Now()
	store.mu.Unlock()
}
