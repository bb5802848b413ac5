// Package events renders gateway event records and delivers them to
// off-chain observers.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"konnadex/internal/logger"
	"konnadex/internal/models"
	"konnadex/internal/repositories"
)

// Record renders e as a tagged text record: "<EventName>: <json>".
func Record(e models.Event) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", e.EventName(), err)
	}
	return fmt.Sprintf("%s: %s", e.EventName(), data), nil
}

// Sink receives every event emitted by a contract.
type Sink interface {
	Publish(ctx context.Context, contract string, e models.Event) error
}

// LogSink writes events to the structured log.
type LogSink struct {
	log logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, contract string, e models.Event) error {
	record, err := Record(e)
	if err != nil {
		return err
	}
	s.log.Info("event", map[string]any{"contract": contract, "record": record})
	return nil
}

// Publisher is a pub/sub transport.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// RedisSink publishes tagged records on a pub/sub channel.
type RedisSink struct {
	pub     Publisher
	channel string
}

func NewRedisSink(pub Publisher, channel string) *RedisSink {
	return &RedisSink{pub: pub, channel: channel}
}

func (s *RedisSink) Publish(ctx context.Context, _ string, e models.Event) error {
	record, err := Record(e)
	if err != nil {
		return err
	}
	if err := s.pub.Publish(ctx, s.channel, record); err != nil {
		return fmt.Errorf("failed to publish %s: %w", e.EventName(), err)
	}
	return nil
}

// StoreSink appends events to the event log table.
type StoreSink struct {
	repo repositories.EventLogRepository
}

func NewStoreSink(repo repositories.EventLogRepository) *StoreSink {
	return &StoreSink{repo: repo}
}

func (s *StoreSink) Publish(ctx context.Context, contract string, e models.Event) error {
	record, err := Record(e)
	if err != nil {
		return err
	}
	payload, err := models.EventPayload(e)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", e.EventName(), err)
	}
	return s.repo.Create(ctx, &models.EventLog{
		Contract: contract,
		Name:     e.EventName(),
		Payload:  payload,
		Record:   record,
	})
}

// Fanout delivers to every sink and joins their errors.
type Fanout []Sink

func (f Fanout) Publish(ctx context.Context, contract string, e models.Event) error {
	var errs []error
	for _, sink := range f {
		if err := sink.Publish(ctx, contract, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemorySink keeps every published event in order.
type MemorySink struct {
	mu     sync.Mutex
	events []models.Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(_ context.Context, _ string, e models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

// Events returns a copy of the events published so far.
func (s *MemorySink) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, len(s.events))
	copy(out, s.events)
	return out
}
