package service

import (
	"github.com/avvvet/match-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

// Publisher receives domain events once the write behind them has committed.
type Publisher interface {
	Publish(ev comm.Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(comm.Event) error { return nil }

// publish never fails the caller; the write already committed.
func publish(p Publisher, eventType string, data any) {
	if p == nil {
		return
	}
	ev, err := comm.NewEvent(eventType, data)
	if err != nil {
		log.Errorf("Error encoding %s event: %v", eventType, err)
		return
	}
	if err := p.Publish(ev); err != nil {
		log.Warnf("Failed to publish %s event: %v", eventType, err)
	}
}
