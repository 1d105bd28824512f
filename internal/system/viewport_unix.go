//go:build unix

package system

import "golang.org/x/sys/unix"

// TerminalPixels reports the pixel size of the terminal on fd, when the
// terminal knows it.
func TerminalPixels(fd int) SizeSource {
	return func() (int, int) {
		ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
		if err != nil {
			return 0, 0
		}
		return int(ws.Xpixel), int(ws.Ypixel)
	}
}
