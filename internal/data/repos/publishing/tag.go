package publishing

import (
	"gorm.io/gorm"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type TagRepo interface {
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*types.Tag, error)
	ListAll(dbc dbctx.Context) ([]*types.Tag, error)
	Create(dbc dbctx.Context, tags []*types.Tag) ([]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, log *logger.Logger) TagRepo {
	return &tagRepo{
		db:  db,
		log: log.With("repo", "TagRepo"),
	}
}

func (r *tagRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*types.Tag, error) {
	results := []*types.Tag{}
	if len(ids) == 0 {
		return results, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *tagRepo) ListAll(dbc dbctx.Context) ([]*types.Tag, error) {
	results := []*types.Tag{}
	if err := dbc.DB(r.db).
		Order("name ASC").
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Create exists for seeding and tests; the publishing flow never writes tags.
func (r *tagRepo) Create(dbc dbctx.Context, tags []*types.Tag) ([]*types.Tag, error) {
	if len(tags) == 0 {
		return []*types.Tag{}, nil
	}
	if err := dbc.DB(r.db).Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
