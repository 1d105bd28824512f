//go:build unix

package events

import (
	"os"

	"golang.org/x/sys/unix"
)

var watchedSignals = []os.Signal{unix.SIGWINCH, unix.SIGINT, unix.SIGTERM}

func isResizeSignal(sig os.Signal) bool { return sig == unix.SIGWINCH }
