package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate and fanned out to handlers
// after the aggregate is persisted.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
}

// AggregateRef names the aggregate an event was raised on
type AggregateRef struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

// BaseDomainEvent is the envelope concrete events embed
type BaseDomainEvent struct {
	ID        uuid.UUID    `json:"event_id"`
	Type      string       `json:"event_type"`
	At        time.Time    `json:"occurred_at"`
	Aggregate AggregateRef `json:"aggregate"`
	Tenant    uuid.UUID    `json:"tenant_id"`
}

func (e BaseDomainEvent) EventID() uuid.UUID { return e.ID }
func (e BaseDomainEvent) EventType() string { return e.Type }
func (e BaseDomainEvent) OccurredAt() time.Time { return e.At }
func (e BaseDomainEvent) AggregateID() uuid.UUID { return e.Aggregate.ID }
func (e BaseDomainEvent) AggregateType() string { return e.Aggregate.Type }
func (e BaseDomainEvent) TenantID() uuid.UUID { return e.Tenant }

// NewBaseDomainEvent stamps an envelope with the current time
func NewBaseDomainEvent(eventType, aggType string, aggID, tenantID uuid.UUID) BaseDomainEvent {
	return NewBaseDomainEventAt(eventType, aggType, aggID, tenantID, time.Now())
}

// NewBaseDomainEventAt stamps an envelope with the time the fact happened,
// for events whose aggregate carries its own clock.
func NewBaseDomainEventAt(eventType, aggType string, aggID, tenantID uuid.UUID, at time.Time) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		At:        at,
		Aggregate: AggregateRef{Type: aggType, ID: aggID},
		Tenant:    tenantID,
	}
}

// EventHandler receives events from a bus. An empty EventTypes result
// subscribes the handler to every event.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the side application services depend on
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is a publisher that also manages subscriptions and a lifecycle
type EventBus interface {
	EventPublisher
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// EventSource is anything that buffers events until it is saved
type EventSource interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// PublishPending drains src into pub. The buffer is cleared even when
// publishing fails so a retried save cannot emit the same events twice.
func PublishPending(ctx context.Context, pub EventPublisher, src EventSource) error {
	events := src.GetDomainEvents()
	if len(events) == 0 || pub == nil {
		return nil
	}
	defer src.ClearDomainEvents()
	return pub.Publish(ctx, events...)
}
