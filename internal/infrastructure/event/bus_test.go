package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ghxstship/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Project", uuid.New(), uuid.New()),
	}
}

type testHandler struct {
	eventTypes []string
	err        error
	panicWith  any
	mu         sync.Mutex
	handled    []shared.DomainEvent
}

func (h *testHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestInMemoryEventBus_Routing(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	alerts := &testHandler{eventTypes: []string{"RiskAlertRaised"}}
	everything := &testHandler{}

	bus.Subscribe(alerts)
	bus.Subscribe(everything)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("RiskAlertRaised"),
		newTestEvent("PaymentSettled"),
	))

	assert.Equal(t, 1, alerts.count())
	assert.Equal(t, 2, everything.count())

	bus.Unsubscribe(alerts)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("RiskAlertRaised")))
	assert.Equal(t, 1, alerts.count())
	assert.Equal(t, 3, everything.count())
}

func TestInMemoryEventBus_ExplicitTypesOverrideHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	h := &testHandler{eventTypes: []string{"A"}}
	bus.Subscribe(h, "B")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A"), newTestEvent("B")))
	assert.Equal(t, 1, h.count())
}

func TestInMemoryEventBus_FailuresDoNotPropagate(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := &testHandler{eventTypes: []string{"E"}, err: errors.New("smtp down")}
	panicking := &testHandler{eventTypes: []string{"E"}, panicWith: "boom"}
	healthy := &testHandler{eventTypes: []string{"E"}}
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("E")))

	assert.Equal(t, 1, healthy.count(), "later handlers still run")
	assert.Equal(t, int64(2), bus.Failures())
	require.Equal(t, 2, logs.Len())
	assert.Contains(t, logs.All()[1].ContextMap()["error"], "handler panicked: boom")
}

func TestInMemoryEventBus_Lifecycle(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.running.Load())
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.running.Load())
}

func TestInMemoryEventBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	late := &testHandler{}
	var once sync.Once
	first := &subscribingHandler{onHandle: func() { once.Do(func() { bus.Subscribe(late) }) }}
	bus.Subscribe(first)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Zero(t, late.count(), "a handler added mid-publish waits for the next event")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("A")))
	assert.Equal(t, 1, late.count())
}

type subscribingHandler struct {
	onHandle func()
}

func (h *subscribingHandler) Handle(context.Context, shared.DomainEvent) error {
	h.onHandle()
	return nil
}

func (h *subscribingHandler) EventTypes() []string { return nil }
