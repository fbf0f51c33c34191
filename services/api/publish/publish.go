// Package publish forwards finished reports to outbound display and stream
// sinks. Sinks never receive raw telemetry.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope every sink receives.
type Event struct {
	ID         string          `json:"id"`
	Domain     string          `json:"domain"`
	Zone       string          `json:"zone"`
	Headline   string          `json:"headline,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Report     json.RawMessage `json:"report"`
}

// NewEvent wraps a report under a fresh event id.
func NewEvent(domain, zone, headline string, at time.Time, report any) (Event, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s report: %w", domain, err)
	}
	return Event{
		ID:         uuid.NewString(),
		Domain:     domain,
		Zone:       zone,
		Headline:   headline,
		OccurredAt: at.UTC(),
		Report:     raw,
	}, nil
}

// Key groups events per domain and zone.
func (e Event) Key() string { return e.Domain + "/" + e.Zone }

// Sink delivers events somewhere outside the process.
type Sink interface {
	Name() string
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards events.
type Nop struct{}

func (Nop) Name() string                          { return "nop" }
func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                          { return nil }

// Observer is told how each delivery went.
type Observer func(sink string, err error)

// Multi fans an event out to every sink and joins their errors.
type Multi struct {
	sinks   []Sink
	observe Observer
}

func NewMulti(observe Observer, sinks ...Sink) *Multi {
	return &Multi{sinks: sinks, observe: observe}
}

func (m *Multi) Name() string { return "multi" }

// Len is the number of wrapped sinks.
func (m *Multi) Len() int { return len(m.sinks) }

func (m *Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, s := range m.sinks {
		err := s.Publish(ctx, ev)
		if m.observe != nil {
			m.observe(s.Name(), err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
