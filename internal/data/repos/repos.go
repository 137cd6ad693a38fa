package repos

import (
	"github.com/yungbote/postboard-backend/internal/data/repos/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type PostRepo = publishing.PostRepo
type TagRepo = publishing.TagRepo
type UserRepo = publishing.UserRepo

type PostInclude = publishing.PostInclude

// IncludeAll loads the author and tags a post output needs.
var IncludeAll = publishing.IncludeAll

func NewPostRepo(db *gorm.DB, baseLog *logger.Logger) PostRepo {
	return publishing.NewPostRepo(db, baseLog)
}
func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return publishing.NewTagRepo(db, baseLog)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return publishing.NewUserRepo(db, baseLog)
}
