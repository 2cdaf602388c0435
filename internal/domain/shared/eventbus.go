package shared

import "context"

// EventHandler consumes domain events. EventTypes narrows delivery; an
// empty result subscribes the handler to every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the write side of the bus
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber is the read side of the bus. Passing explicit event
// types overrides whatever the handler's EventTypes reports.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
}

// EventBus joins both sides of the bus
type EventBus interface {
	EventPublisher
	EventSubscriber
}
