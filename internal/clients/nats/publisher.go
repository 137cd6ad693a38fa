package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	natspkg "github.com/nats-io/nats.go"

	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

// Publisher sends fire-and-forget messages on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
	Close()
}

type Config struct {
	URL           string
	Name          string
	ConnectWait   time.Duration
	MaxReconnects int
}

type publisher struct {
	log *logger.Logger
	nc  *natspkg.Conn
}

func NewPublisher(log *logger.Logger, cfg Config) (Publisher, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("missing nats url")
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "postboard"
	}
	wait := cfg.ConnectWait
	if wait <= 0 {
		wait = 5 * time.Second
	}
	pubLog := log.With("client", "NatsPublisher")
	nc, err := natspkg.Connect(url,
		natspkg.Name(name),
		natspkg.Timeout(wait),
		natspkg.MaxReconnects(cfg.MaxReconnects),
		natspkg.DisconnectErrHandler(func(_ *natspkg.Conn, err error) {
			if err != nil {
				pubLog.Warn("nats disconnected", "error", err)
			}
		}),
		natspkg.ReconnectHandler(func(c *natspkg.Conn) {
			pubLog.Info("nats reconnected", "url", c.ConnectedUrlRedacted())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &publisher{log: pubLog, nc: nc}, nil
}

func (p *publisher) Publish(ctx context.Context, subject string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("nats publish: empty subject")
	}
	return p.nc.Publish(subject, payload)
}

func (p *publisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.nc.Close()
	}
}

type noopPublisher struct{}

// NewNoopPublisher drops every message; used when NATS_URL is unset.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (noopPublisher) Close()                                        {}
