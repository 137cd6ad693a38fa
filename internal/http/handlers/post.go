package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/http/response"
	"github.com/yungbote/postboard-backend/internal/platform/ctxutil"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
	"github.com/yungbote/postboard-backend/internal/services"
)

type PostHandler struct {
	log   *logger.Logger
	posts services.PostService
}

func NewPostHandler(log *logger.Logger, posts services.PostService) *PostHandler {
	return &PostHandler{log: log.With("handler", "PostHandler"), posts: posts}
}

// GET /api/posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondFailure(c, h.log, "ListPosts", err)
		return
	}
	response.RespondOK(c, posts)
}

// GET /api/posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, h.log, "GetPost", err)
		return
	}
	response.RespondOK(c, post)
}

// GET /api/posts/:id/edit
func (h *PostHandler) EditForm(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	ctx := c.Request.Context()
	form, err := h.posts.EditForm(ctx, ctxutil.CurrentUserID(ctx), id)
	if err != nil {
		respondFailure(c, h.log, "EditForm", err)
		return
	}
	response.RespondOK(c, form)
}

// POST /api/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var in types.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ctx := c.Request.Context()
	post, err := h.posts.Create(ctx, ctxutil.CurrentUserID(ctx), in)
	if err != nil {
		respondFailure(c, h.log, "CreatePost", err)
		return
	}
	response.RespondCreated(c, fmt.Sprintf("/api/posts/%d", post.ID), post)
}

// PUT /api/posts/:id
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var in types.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	ctx := c.Request.Context()
	post, err := h.posts.Update(ctx, ctxutil.CurrentUserID(ctx), id, in)
	if err != nil {
		respondFailure(c, h.log, "UpdatePost", err)
		return
	}
	response.RespondOK(c, post)
}

// DELETE /api/posts/:id
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := postIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	ctx := c.Request.Context()
	if err := h.posts.Delete(ctx, ctxutil.CurrentUserID(ctx), id); err != nil {
		respondFailure(c, h.log, "DeletePost", err)
		return
	}
	response.RespondNoContent(c)
}
