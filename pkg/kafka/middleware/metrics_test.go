package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"smarthost/pkg/kafka"
)

func TestMetrics_Consumer(t *testing.T) {
	m := NewMetrics()
	mw := m.ConsumerMiddleware()

	ok := func(context.Context, kafka.Message) error { return nil }
	fail := func(context.Context, kafka.Message) error { return errors.New("x") }

	_ = mw(context.Background(), kafka.Message{}, ok)
	_ = mw(context.Background(), kafka.Message{}, ok)
	_ = mw(context.Background(), kafka.Message{}, fail)

	s := m.Snapshot()
	if s.Consumed != 2 || s.ConsumeFailed != 1 {
		t.Errorf("snapshot = %+v, want 2 consumed and 1 failed", s)
	}
	if s.Published != 0 || s.AvgPublishDuration != 0 {
		t.Errorf("producer counters should be untouched: %+v", s)
	}
}

func TestMetrics_Producer(t *testing.T) {
	m := NewMetrics()
	mw := m.ProducerMiddleware()

	err := mw(context.Background(), kafka.Message{}, func(context.Context, kafka.Message) error {
		return errors.New("broker down")
	})
	if err == nil {
		t.Fatal("middleware must return the publish error")
	}
	if s := m.Snapshot(); s.PublishFailed != 1 || s.Published != 0 {
		t.Errorf("snapshot = %+v", s)
	}
}
