package services

import (
	"context"

	"github.com/yungbote/postboard-backend/internal/data/repos"
	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

// TagService lists the tags a post form can offer.
type TagService interface {
	List(ctx context.Context) ([]types.ShortTag, error)
}

type tagService struct {
	tags repos.TagRepo
	log  *logger.Logger
}

func NewTagService(tags repos.TagRepo, log *logger.Logger) TagService {
	return &tagService{tags: tags, log: log.With("service", "TagService")}
}

func (s *tagService) List(ctx context.Context) ([]types.ShortTag, error) {
	rows, err := s.tags.ListAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	return types.ToShortTags(rows), nil
}
