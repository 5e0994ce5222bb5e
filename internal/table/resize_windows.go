//go:build windows

package table

import "os"

// subscribeResize returns a channel that never fires: Windows consoles
// deliver no resize signal, so live tables render once and stay put.
func subscribeResize() (<-chan os.Signal, func()) {
	return nil, func() {}
}
