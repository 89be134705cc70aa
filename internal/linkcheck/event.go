package linkcheck

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// BrokenLinkEvent describes a nav link without a page. It is published for
// downstream processing such as opening an issue.
type BrokenLinkEvent struct {
	CheckID   string    `json:"check_id"` // shared by every event of one Check call
	Link      string    `json:"link"`
	Text      string    `json:"text"`
	Position  string    `json:"position"`
	Trail     []string  `json:"trail,omitempty"`
	DocsDir   string    `json:"docs_dir"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher delivers broken link events.
type Publisher interface {
	PublishBrokenLink(ctx context.Context, event BrokenLinkEvent) error
}

const flushTimeout = 2 * time.Second

// NATSPublisher publishes events as JSON on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url and publishes on subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("docnav"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to connect to NATS").WithContext("url", url).Build()
	}
	slog.Info("NATS publisher connected", logfields.URL(url), slog.String("subject", subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// PublishBrokenLink publishes event and flushes so it is on the wire before
// the command exits.
func (p *NATSPublisher) PublishBrokenLink(ctx context.Context, event BrokenLinkEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal broken link event").Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to publish broken link event").Build()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.conn.FlushTimeout(flushTimeout); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to flush NATS connection").Build()
	}
	slog.Debug("Published broken link event", logfields.Link(event.Link), slog.String("subject", p.subject))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
