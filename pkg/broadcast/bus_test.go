package broadcast

import (
	"testing"

	"go.uber.org/zap"
)

func TestBus_EmitAndUnsubscribe(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var a, b int
	unsubA := bus.Subscribe("cartUpdated", func() { a++ })
	bus.Subscribe("cartUpdated", func() { b++ })
	bus.Subscribe("other", func() { t.Error("listener for another event was called") })

	bus.Emit("cartUpdated")
	if a != 1 || b != 1 {
		t.Fatalf("expected both listeners called once, got a=%d b=%d", a, b)
	}

	unsubA()
	unsubA()
	bus.Emit("cartUpdated")
	if a != 1 || b != 2 {
		t.Errorf("after unsubscribe: a=%d b=%d", a, b)
	}
	if n := bus.ListenerCount("cartUpdated"); n != 1 {
		t.Errorf("ListenerCount = %d, want 1", n)
	}
}

func TestBus_PanickingListenerDoesNotStopOthers(t *testing.T) {
	bus := NewBus(nil)

	called := false
	bus.Subscribe("cartUpdated", func() { panic("boom") })
	bus.Subscribe("cartUpdated", func() { called = true })

	bus.Emit("cartUpdated")
	if !called {
		t.Error("second listener was not called")
	}
}

func TestBus_ChannelCoalesces(t *testing.T) {
	bus := NewBus(nil)

	ch, unsubscribe := bus.Channel("cartUpdated", 1)
	bus.Emit("cartUpdated")
	bus.Emit("cartUpdated")

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending signal")
	}
	select {
	case <-ch:
		t.Fatal("expected the second emission to be coalesced")
	default:
	}

	unsubscribe()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
	bus.Emit("cartUpdated")
	unsubscribe()
}
