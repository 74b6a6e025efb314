package event

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/Iron-Ham/cogniload/internal/logging"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus(nil)

	called := false
	id := bus.Subscribe(KeyTopic("k"), func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_PublishKeyChanged(t *testing.T) {
	bus := NewBus(nil)

	var received KeyChangedEvent
	bus.Subscribe(KeyTopic("tasks_completed_today"), func(e Event) {
		received = e.(KeyChangedEvent)
	})

	bus.Publish(NewKeyChangedEvent("tasks_completed_today", "3"))

	if received.Key != "tasks_completed_today" || received.Value != "3" {
		t.Errorf("received %+v", received)
	}
	if received.Source != "local" {
		t.Errorf("Source = %q, want local", received.Source)
	}
	if received.Timestamp().IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := NewBus(nil)

	bus.Subscribe(KeyTopic("other"), func(e Event) {
		t.Error("Handler should not be called for a different key")
	})

	bus.Publish(NewKeyChangedEvent("k", "v"))
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus(nil)

	callCount := 0
	bus.Subscribe(KeyTopic("k"), func(e Event) { callCount++ })
	bus.Subscribe(KeyTopic("k"), func(e Event) { callCount++ })

	bus.Publish(NewKeyChangedEvent("k", "v"))

	if callCount != 2 {
		t.Errorf("Expected both handlers to be called, got %d calls", callCount)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	keep := bus.Subscribe(KeyTopic("k"), func(e Event) { calls++ })
	drop := bus.Subscribe(KeyTopic("k"), func(e Event) { calls += 100 })

	if !bus.Unsubscribe(drop) {
		t.Fatal("Unsubscribe should return true for an existing subscription")
	}
	if bus.Unsubscribe(drop) {
		t.Error("Unsubscribe should return false the second time")
	}

	bus.Publish(NewKeyChangedEvent("k", "v"))
	if calls != 1 {
		t.Errorf("Expected only the remaining handler to run, got %d", calls)
	}

	bus.Unsubscribe(keep)
	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions, got %d", bus.SubscriptionCount())
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus(nil)

	var id string
	calls := 0
	id = bus.Subscribe(KeyTopic("k"), func(e Event) {
		calls++
		bus.Unsubscribe(id)
	})

	bus.Publish(NewKeyChangedEvent("k", "1"))
	bus.Publish(NewKeyChangedEvent("k", "2"))

	if calls != 1 {
		t.Errorf("Expected handler to unsubscribe itself after one call, got %d", calls)
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus(nil)
	bus.Subscribe("a", func(e Event) {})
	bus.SubscribeAll(func(e Event) {})

	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus(logging.NewLoggerWithWriter(&buf, logging.LevelDebug))

	calls := 0
	bus.Subscribe(KeyTopic("k"), func(e Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(KeyTopic("k"), func(e Event) {
		calls++
	})

	bus.Publish(NewKeyChangedEvent("k", "v"))

	if calls != 2 {
		t.Errorf("Expected both handlers to be called despite panic, got %d calls", calls)
	}
	if !strings.Contains(buf.String(), "event handler panicked") {
		t.Errorf("expected panic to be logged, got %q", buf.String())
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	calls := 0
	bus.Subscribe(KeyTopic("k"), func(e Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			bus.Publish(NewKeyChangedEvent("k", "v"))
		})
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("Expected 100 calls, got %d", calls)
	}
}

func TestBus_ConcurrentSubscribeUnsubscribe(t *testing.T) {
	bus := NewBus(nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() {
			id := bus.Subscribe(KeyTopic("k"), func(e Event) {})
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after concurrent add/remove, got %d", bus.SubscriptionCount())
	}
}

func TestBus_WildcardAfterSpecific(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.SubscribeAll(func(e Event) {
		order = append(order, "wildcard:"+e.EventType())
	})
	bus.Subscribe("day.rollover", func(e Event) {
		order = append(order, "specific:"+e.EventType())
	})

	bus.Publish(NewDayRolloverEvent("completions", "2026-02-02", "2026-02-03"))

	want := []string{"specific:day.rollover", "wildcard:day.rollover"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d handler calls, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus(nil)

	ids := make(map[string]bool)
	for range 1000 {
		id := bus.Subscribe("x", func(e Event) {})
		if ids[id] {
			t.Fatalf("Duplicate subscription ID: %s", id)
		}
		ids[id] = true
	}
}

func TestKeyReloadedEvent(t *testing.T) {
	e := NewKeyReloadedEvent("k", "v")
	if e.Source != "reload" || e.EventType() != KeyTopic("k") {
		t.Errorf("event = %+v", e)
	}
}
