package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/postboard-backend/internal/http/response"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
	"github.com/yungbote/postboard-backend/internal/services"
)

type TagHandler struct {
	log  *logger.Logger
	tags services.TagService
}

func NewTagHandler(log *logger.Logger, tags services.TagService) *TagHandler {
	return &TagHandler{log: log.With("handler", "TagHandler"), tags: tags}
}

// GET /api/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tags.List(c.Request.Context())
	if err != nil {
		respondFailure(c, h.log, "ListTags", err)
		return
	}
	response.RespondOK(c, tags)
}
