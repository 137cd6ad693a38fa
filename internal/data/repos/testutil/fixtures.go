package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, userName string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		UserName: userName,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedTag inserts a tag with a fixed id so tests can reference it directly.
func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, id uint, name, slug string) *types.Tag {
	tb.Helper()
	tag := &types.Tag{ID: id, Name: name, Slug: slug}
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}

func SeedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, slug string, tags ...*types.Tag) *types.Post {
	tb.Helper()
	p := &types.Post{
		Title:     "Seeded " + slug,
		Slug:      slug,
		Content:   "seeded content",
		AuthorID:  authorID,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		tb.Fatalf("seed post: %v", err)
	}
	for _, t := range tags {
		if err := tx.WithContext(ctx).Create(&types.PostTag{PostID: p.ID, TagID: t.ID}).Error; err != nil {
			tb.Fatalf("seed post tag: %v", err)
		}
	}
	p.Tags = tags
	return p
}

// TagIDsOf reads the join table directly.
func TagIDsOf(tb testing.TB, ctx context.Context, tx *gorm.DB, postID uint) []uint {
	tb.Helper()
	var ids []uint
	if err := tx.WithContext(ctx).Model(&types.PostTag{}).
		Where("post_id = ?", postID).
		Order("tag_id ASC").
		Pluck("tag_id", &ids).Error; err != nil {
		tb.Fatalf("read post tags: %v", err)
	}
	return ids
}
