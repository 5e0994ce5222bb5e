package table

import (
	"fmt"
	"io"
	"sync"
)

// Watcher keeps a rendered table in sync with the terminal width. Its
// only states are watching and stopped; Stop is terminal and
// idempotent.
type Watcher struct {
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// RenderLive renders the table, then redraws it in place whenever the
// terminal reports a resize. Each resize triggers one synchronous
// relayout against the new width; no debouncing is applied.
//
// Callers must Stop the returned watcher before reading interactive
// input again, otherwise an async redraw can interleave with a live
// prompt.
func (t *Table) RenderLive(w io.Writer) (*Watcher, error) {
	if err := t.Render(w); err != nil {
		return nil, err
	}

	events, cancel := subscribeResize()
	wt := &Watcher{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(wt.done)
		defer cancel()
		for {
			select {
			case <-wt.stop:
				return
			case <-events:
				t.redraw(w)
			}
		}
	}()
	return wt, nil
}

// Stop unsubscribes from resize notifications and waits for any
// in-flight redraw to finish. Further calls are no-ops.
func (wt *Watcher) Stop() {
	wt.stopOnce.Do(func() {
		close(wt.stop)
	})
	<-wt.done
}

// redraw moves the cursor back over the previous output, clears it,
// and renders at the current width.
func (t *Table) redraw(w io.Writer) {
	if t.lineCount > 0 {
		_, _ = fmt.Fprintf(w, "\x1b[%dA\x1b[J", t.lineCount)
	}
	_ = t.Render(w)
}
