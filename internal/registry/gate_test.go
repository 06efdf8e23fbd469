package registry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGate_StartsClosed(t *testing.T) {
	g := NewGate()
	if g.Opened() {
		t.Error("Expected a fresh gate to be closed")
	}
}

func TestGate_OpenReleasesWaiters(t *testing.T) {
	g := NewGate()

	done := make(chan error, 1)
	go func() {
		done <- g.Wait(context.Background())
	}()

	g.Open()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Wait returned error after open: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after the gate opened")
	}

	if !g.Opened() {
		t.Error("Expected gate to report open")
	}
}

func TestGate_OpenIsIdempotent(t *testing.T) {
	g := NewGate()
	g.Open()
	g.Open() // must not panic on the closed channel
	if !g.Opened() {
		t.Error("Expected gate to stay open")
	}
}

func TestGate_WaitHonorsContext(t *testing.T) {
	g := NewGate()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := g.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestGate_WaitAfterOpenReturnsImmediately(t *testing.T) {
	g := NewGate()
	g.Open()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := g.Wait(ctx); err != nil {
		t.Errorf("Expected immediate return on an open gate, got %v", err)
	}
}
