package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/postboard-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	"github.com/yungbote/postboard-backend/internal/observability"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
	"github.com/yungbote/postboard-backend/internal/services"
)

type Services struct {
	Identity services.IdentityService
	Posts    services.PostService
	Tags     services.TagService

	PostAggregate domainagg.PostAggregate
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	identity, err := services.NewIdentityService(log, repos.User, services.IdentityConfig{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		AccessTTL: cfg.AccessTTL(),
	})
	if err != nil {
		return Services{}, fmt.Errorf("init identity service: %w", err)
	}

	agg := aggregates.NewPostAggregate(aggregates.PostAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log.With("aggregate", "PostAggregate"),
			Hooks: aggregates.NewObservabilityHooks(metrics),
		},
		Posts: repos.Post,
		Tags:  services.NewTagResolver(repos.Tag, log),
	})

	posts := services.NewPostService(services.PostServiceDeps{
		Posts:         agg,
		Cache:         clients.Cache,
		Events:        clients.Events,
		Metrics:       metrics,
		Log:           log,
		CacheTTL:      cfg.CacheTTL(),
		SubjectPrefix: cfg.NATS.SubjectPrefix,
	})

	return Services{
		Identity:      identity,
		Posts:         posts,
		Tags:          services.NewTagService(repos.Tag, log),
		PostAggregate: agg,
	}, nil
}
