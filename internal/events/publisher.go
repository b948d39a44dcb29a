package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ripple/internal/middleware"

	"github.com/nats-io/nats.go"
)

// Publisher delivers domain events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}

type natsPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to NATS at url and returns a publisher.
func NewNATSPublisher(url string) (Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				middleware.Logger.Warn("NATS disconnected", slog.String("error", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			middleware.Logger.Info("NATS reconnected", slog.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	return &natsPublisher{conn: conn}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.conn.Publish(subject, data); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("subject", subject),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// nopPublisher is used when no NATS URL is configured.
type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards all events.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }
func (nopPublisher) Close()                                     {}
