//go:build !unix

package events

import "os"

var watchedSignals = []os.Signal{os.Interrupt}

func isResizeSignal(os.Signal) bool { return false }
