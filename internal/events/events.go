// Package events publishes domain events to NATS so other services can react
// to donations, volunteer applications and messages.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"karma/pkg/types"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

const (
	SubjectDonationCreated      = "donation.created"
	SubjectApplicationSubmitted = "application.submitted"
)

// MessageSubject is the per-nonprofit subject that direct messages are
// fanned out on.
func MessageSubject(nonprofitID string) string {
	return fmt.Sprintf("nonprofit.%s.messages", nonprofitID)
}

type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Connect dials the configured NATS server. An empty NATS_URL disables the
// event bus and returns a nil connection.
func Connect(cfg *types.Config, logger logrus.FieldLogger) (*nats.Conn, error) {
	if cfg.NATSURL == "" {
		return nil, nil
	}

	options := []nats.Option{
		nats.Name("karma"),
		nats.MaxReconnects(cfg.NATSMaxReconnects),
		nats.ReconnectWait(time.Duration(cfg.NATSReconnectWaitSec) * time.Second),
		nats.Timeout(time.Duration(cfg.NATSConnectTimeoutSec) * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("nats reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("nats connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.NATSURL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(conn *nats.Conn) *NATSPublisher {
	return &NATSPublisher{conn: conn}
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", subject, err)
	}

	return nil
}

// Discard drops every event. It stands in when no NATS server is configured.
type Discard struct{}

func (Discard) Publish(context.Context, string, any) error { return nil }

// New picks the NATS publisher when conn is live and Discard otherwise.
func New(conn *nats.Conn) Publisher {
	if conn == nil {
		return Discard{}
	}
	return NewNATSPublisher(conn)
}
