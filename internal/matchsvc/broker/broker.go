package broker

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avvvet/match-services/internal/comm"
	"github.com/nats-io/nats.go"
)

// Broker publishes domain events on NATS as <prefix>.<event type>.
type Broker struct {
	Conn   *nats.Conn
	Prefix string
}

func NewBroker(nc *nats.Conn, prefix string) *Broker {
	return &Broker{Conn: nc, Prefix: prefix}
}

func (b *Broker) Subject(eventType string) string {
	if b.Prefix == "" {
		return eventType
	}
	return b.Prefix + "." + eventType
}

func (b *Broker) Publish(ev comm.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return b.Conn.Publish(b.Subject(ev.Type), payload)
}

// Publisher is anything that accepts events.
type Publisher interface {
	Publish(ev comm.Event) error
}

// Fanout hands every event to each publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ev comm.Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
