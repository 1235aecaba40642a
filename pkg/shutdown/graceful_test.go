package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestWithSignalsCancelsOnSignal(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatal(err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled after SIGTERM")
	}
}

func TestWithSignalsCancelFunc(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("cancel func did not cancel the context")
	}
}
