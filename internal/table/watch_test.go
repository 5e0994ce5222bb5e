package table

import (
	"strings"
	"sync"
	"testing"
)

// syncWriter guards a builder so the watcher goroutine and the test can
// share it.
type syncWriter struct {
	mu sync.Mutex
	b  strings.Builder
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.b.String()
}

func TestRenderLiveInitialRender(t *testing.T) {
	tbl, err := New([]Column{
		{Key: "v", Header: "V", Flex: 1},
	}, Options{Width: fixedWidth(30)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tbl.AddRow(Row{"v": "live"})

	var w syncWriter
	wt, err := tbl.RenderLive(&w)
	if err != nil {
		t.Fatalf("RenderLive: %v", err)
	}
	defer wt.Stop()

	if !strings.Contains(w.String(), "live") {
		t.Errorf("initial render missing row content:\n%s", w.String())
	}
}

func TestWatcherStopIdempotent(t *testing.T) {
	tbl, err := New([]Column{
		{Key: "v", Header: "V", Flex: 1},
	}, Options{Width: fixedWidth(30)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var w syncWriter
	wt, err := tbl.RenderLive(&w)
	if err != nil {
		t.Fatalf("RenderLive: %v", err)
	}

	wt.Stop()
	wt.Stop() // must not panic or block
}

func TestWatcherStopConcurrent(t *testing.T) {
	tbl, err := New([]Column{
		{Key: "v", Header: "V", Flex: 1},
	}, Options{Width: fixedWidth(30)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var w syncWriter
	wt, err := tbl.RenderLive(&w)
	if err != nil {
		t.Fatalf("RenderLive: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wt.Stop()
		}()
	}
	wg.Wait()
}
