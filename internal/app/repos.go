package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/postboard-backend/internal/data/repos"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

type Repos struct {
	Post repos.PostRepo
	Tag  repos.TagRepo
	User repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Post: repos.NewPostRepo(db, log),
		Tag:  repos.NewTagRepo(db, log),
		User: repos.NewUserRepo(db, log),
	}
}
