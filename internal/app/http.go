package app

import (
	apphttp "github.com/yungbote/postboard-backend/internal/http"
	httpH "github.com/yungbote/postboard-backend/internal/http/handlers"
	httpMW "github.com/yungbote/postboard-backend/internal/http/middleware"
	"github.com/yungbote/postboard-backend/internal/observability"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Post   *httpH.PostHandler
	Tag    *httpH.TagHandler
}

func wireHandlers(log *logger.Logger, services Services, health map[string]httpH.Pinger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(health),
		Post:   httpH.NewPostHandler(log, services.Posts),
		Tag:    httpH.NewTagHandler(log, services.Tags),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *apphttp.Server {
	rc := apphttp.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		CORSOrigins:    cfg.CORSOrigins,
		AuthMiddleware: middleware.Auth,
		PostHandler:    handlers.Post,
		TagHandler:     handlers.Tag,
		HealthHandler:  handlers.Health,
	}
	if cfg.OTel.Enabled {
		rc.ServiceName = cfg.OTel.ServiceName
	}
	return apphttp.NewServer(rc, cfg.HTTPAddr)
}
