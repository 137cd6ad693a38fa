package publishing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type UserRepo interface {
	// Upsert records the display name the identity provider reported for id.
	Upsert(dbc dbctx.Context, id uuid.UUID, userName string) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return &userRepo{
		db:  db,
		log: log.With("repo", "UserRepo"),
	}
}

func (r *userRepo) Upsert(dbc dbctx.Context, id uuid.UUID, userName string) error {
	if id == uuid.Nil {
		return nil
	}
	now := time.Now().UTC()
	row := &types.User{
		ID:        id,
		UserName:  strings.TrimSpace(userName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return dbc.DB(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_name", "updated_at"}),
		}).
		Create(row).Error
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	var rows []*types.User
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
