package db

import (
	"fmt"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.SetupJoinTable(&types.Post{}, "Tags", &types.PostTag{}); err != nil {
		return fmt.Errorf("setup post_tag join table: %w", err)
	}
	return db.AutoMigrate(
		&types.User{},
		&types.Tag{},
		&types.Post{},
		&types.PostTag{},
	)
}
