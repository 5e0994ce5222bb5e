package iocontext

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestWithIO(t *testing.T) {
	var out, errBuf bytes.Buffer
	ctx := WithIO(context.Background(), &out, &errBuf)

	if Stdout(ctx) != &out {
		t.Error("Stdout should return the injected writer")
	}
	if Stderr(ctx) != &errBuf {
		t.Error("Stderr should return the injected writer")
	}
}

func TestFallbackToProcessStreams(t *testing.T) {
	ctx := context.Background()
	if Stdout(ctx) != os.Stdout {
		t.Error("Stdout should fall back to os.Stdout")
	}
	if Stderr(ctx) != os.Stderr {
		t.Error("Stderr should fall back to os.Stderr")
	}
}

func TestNilWriterFallsBack(t *testing.T) {
	ctx := WithIO(context.Background(), nil, nil)
	if Stdout(ctx) != os.Stdout {
		t.Error("nil stdout should fall back to os.Stdout")
	}
	if Stderr(ctx) != os.Stderr {
		t.Error("nil stderr should fall back to os.Stderr")
	}
}
