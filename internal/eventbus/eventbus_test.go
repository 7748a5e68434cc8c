package eventbus

import (
	"testing"

	"github.com/kilianp07/timetable/core/events"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Publish(events.StageEvent{State: "done"})
	ev := <-sub
	se, ok := ev.(events.StageEvent)
	if !ok || se.State != "done" {
		t.Fatalf("unexpected event %v", ev)
	}
	b.Close()
	if _, open := <-sub; open {
		t.Fatal("channel should be closed after Close")
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	b.Publish(events.StageEvent{State: "dropped"})
	if _, open := <-sub; open {
		t.Fatal("unsubscribed channel should be closed")
	}
	b.Close()
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New()
	b.Close()
	b.Publish(events.StageEvent{State: "late"})
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	_ = b.Subscribe()
	for i := 0; i < 100; i++ {
		b.Publish(events.ScheduleUpdated{Items: i})
	}
	b.Close()
}
