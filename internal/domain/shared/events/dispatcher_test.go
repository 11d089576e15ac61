package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(eventType string) BaseEvent {
	return BaseEvent{
		AggregateID: "42",
		EventType:   eventType,
		OccurredAt:  time.Now(),
	}
}

func TestDispatcherPublishRequiresStart(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	err := d.Publish(testEvent("report.submitted"))
	assert.Error(t, err)
}

func TestDispatcherDeliversToSubscriber(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	received := make(chan DomainEvent, 1)
	handler := NewSimpleEventHandler("report.submitted", func(e DomainEvent) error {
		received <- e
		return nil
	})
	require.NoError(t, d.Subscribe("report.submitted", handler))

	require.NoError(t, d.Start())
	defer d.Stop()

	require.NoError(t, d.Publish(testEvent("report.submitted")))

	select {
	case e := <-received:
		assert.Equal(t, "42", e.GetAggregateID())
		assert.Equal(t, "report.submitted", e.GetEventType())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestDispatcherSkipsOtherEventTypes(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	received := make(chan DomainEvent, 1)
	handler := NewSimpleEventHandler("report.approved", func(e DomainEvent) error {
		received <- e
		return nil
	})
	require.NoError(t, d.Subscribe("report.approved", handler))

	require.NoError(t, d.Start())
	defer d.Stop()

	require.NoError(t, d.Publish(testEvent("report.rejected")))

	select {
	case <-received:
		t.Fatal("handler received an event type it never subscribed to")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDispatcherSubscribeValidation(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	assert.Error(t, d.Subscribe("", NewSimpleEventHandler("x", nil)))
	assert.Error(t, d.Subscribe("report.submitted", nil))
}

func TestDispatcherDoubleStart(t *testing.T) {
	d := NewInMemoryEventDispatcher(10)

	require.NoError(t, d.Start())
	defer d.Stop()

	assert.Error(t, d.Start())
}
