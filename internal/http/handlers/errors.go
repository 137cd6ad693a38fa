package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	"github.com/yungbote/postboard-backend/internal/http/response"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

// respondFailure logs server-side failures before the cause is hidden from the client.
func respondFailure(c *gin.Context, log *logger.Logger, op string, err error) {
	if response.StatusForCode(domainagg.CodeOf(err)) >= http.StatusInternalServerError {
		log.Error(op+" failed", "error", err, "route", c.FullPath())
	}
	response.RespondAggregateError(c, err)
}
