package app

import (
	"fmt"

	natsclient "github.com/yungbote/postboard-backend/internal/clients/nats"
	redisclient "github.com/yungbote/postboard-backend/internal/clients/redis"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type Clients struct {
	Cache  redisclient.Cache
	Events natsclient.Publisher
}

// wireClients connects the optional cache and event bus. Unset addresses fall
// back to no-op implementations.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	cache := redisclient.NewNoopCache()
	if cfg.Redis.Addr != "" {
		c, err := redisclient.NewCache(log, redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis cache: %w", err)
		}
		cache = c
	}

	events := natsclient.NewNoopPublisher()
	if cfg.NATS.URL != "" {
		p, err := natsclient.NewPublisher(log, natsclient.Config{
			URL:  cfg.NATS.URL,
			Name: cfg.OTel.ServiceName,
		})
		if err != nil {
			_ = cache.Close()
			return Clients{}, fmt.Errorf("init nats publisher: %w", err)
		}
		events = p
	}

	return Clients{Cache: cache, Events: events}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Events != nil {
		c.Events.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
