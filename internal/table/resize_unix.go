//go:build unix

package table

import (
	"os"
	"os/signal"
	"syscall"
)

// subscribeResize registers for SIGWINCH. The buffered channel
// coalesces bursts of resize events; the cancel func releases the
// signal registration.
func subscribeResize() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}
