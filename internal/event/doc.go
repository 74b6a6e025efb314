// Package event provides the synchronous pub-sub bus that carries store
// broadcasts and day-boundary notifications between cogniload components.
//
// The keyed store publishes a [KeyChangedEvent] on [KeyTopic](key) after every
// write, so independent observers of the same key stay consistent without
// sharing an owning object. The day-state tracker publishes a
// [DayRolloverEvent] whenever it resets a fact.
//
// # Main Types
//
//   - [Event]: Interface that all events implement (EventType, Timestamp)
//   - [Bus]: Synchronous dispatcher; Publish returns after all handlers ran
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Thread Safety
//
// [Bus] is safe for concurrent use. Handlers are called on the publishing
// goroutine, outside the bus lock, so a handler may itself publish or
// subscribe. Panicking handlers are recovered and logged.
//
// # Usage
//
//	bus := event.NewBus(logger)
//	id := bus.Subscribe(event.KeyTopic("tasks_completed_today"), func(e event.Event) {
//	    kc := e.(event.KeyChangedEvent)
//	    fmt.Println("completed today:", kc.Value)
//	})
//	defer bus.Unsubscribe(id)
package event
