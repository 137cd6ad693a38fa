package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/postboard-backend/internal/observability"
	httpH "github.com/yungbote/postboard-backend/internal/http/handlers"
	httpMW "github.com/yungbote/postboard-backend/internal/http/middleware"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName enables otelgin spans when set.
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	PostHandler   *httpH.PostHandler
	TagHandler    *httpH.TagHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		if cfg.PostHandler != nil {
			api.GET("/posts", cfg.PostHandler.ListPosts)
			api.GET("/posts/:id", cfg.PostHandler.GetPost)
		}
		if cfg.TagHandler != nil {
			api.GET("/tags", cfg.TagHandler.ListTags)
		}
	}

	protected := api.Group("")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.PostHandler != nil {
			protected.GET("/posts/:id/edit", cfg.PostHandler.EditForm)
			protected.POST("/posts", cfg.PostHandler.CreatePost)
			protected.PUT("/posts/:id", cfg.PostHandler.UpdatePost)
			protected.DELETE("/posts/:id", cfg.PostHandler.DeletePost)
		}
	}

	return r
}
