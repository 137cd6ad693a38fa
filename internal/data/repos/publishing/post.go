package publishing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

// PostInclude selects which associations GetByID and ListAll preload.
type PostInclude struct {
	Author bool
	Tags   bool
}

var IncludeAll = PostInclude{Author: true, Tags: true}

type PostRepo interface {
	// GetByID returns (nil, nil) when the post does not exist.
	GetByID(dbc dbctx.Context, id uint, inc PostInclude) (*types.Post, error)
	ListAll(dbc dbctx.Context, inc PostInclude) ([]*types.Post, error)
	Exists(dbc dbctx.Context, id uint) (bool, error)
	// Create inserts the post row and links post.Tags. Tags are never created.
	Create(dbc dbctx.Context, post *types.Post) error
	// ReplaceTags sets the post's tag links to exactly the existing subset of tagIDs.
	ReplaceTags(dbc dbctx.Context, postID uint, tagIDs []uint) error
	// Delete removes the post and its tag links, returning the number of posts removed.
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type postRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostRepo(db *gorm.DB, log *logger.Logger) PostRepo {
	return &postRepo{
		db:  db,
		log: log.With("repo", "PostRepo"),
	}
}

func (r *postRepo) query(dbc dbctx.Context, inc PostInclude) *gorm.DB {
	q := dbc.DB(r.db).Model(&types.Post{})
	if inc.Author {
		q = q.Preload("Author")
	}
	if inc.Tags {
		q = q.Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tag.id ASC")
		})
	}
	return q
}

func (r *postRepo) GetByID(dbc dbctx.Context, id uint, inc PostInclude) (*types.Post, error) {
	if id == 0 {
		return nil, nil
	}
	var rows []*types.Post
	if err := r.query(dbc, inc).Where("post.id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *postRepo) ListAll(dbc dbctx.Context, inc PostInclude) ([]*types.Post, error) {
	var rows []*types.Post
	if err := r.query(dbc, inc).Order("post.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*types.Post{}
	}
	return rows, nil
}

func (r *postRepo) Exists(dbc dbctx.Context, id uint) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Post{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postRepo) Create(dbc dbctx.Context, post *types.Post) error {
	transaction := dbc.DB(r.db)
	if post.Version == 0 {
		post.Version = 1
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if err := transaction.Omit(clause.Associations).Create(post).Error; err != nil {
		return err
	}
	ids := make([]uint, 0, len(post.Tags))
	for _, t := range post.Tags {
		if t != nil {
			ids = append(ids, t.ID)
		}
	}
	return linkTags(transaction, post.ID, ids)
}

func (r *postRepo) ReplaceTags(dbc dbctx.Context, postID uint, tagIDs []uint) error {
	transaction := dbc.DB(r.db)
	if err := transaction.Where("post_id = ?", postID).Delete(&types.PostTag{}).Error; err != nil {
		return err
	}
	return linkTags(transaction, postID, tagIDs)
}

func (r *postRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	transaction := dbc.DB(r.db)
	if err := transaction.Where("post_id = ?", id).Delete(&types.PostTag{}).Error; err != nil {
		return 0, err
	}
	res := transaction.Where("id = ?", id).Delete(&types.Post{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// linkTags inserts join rows only for tags that exist at statement time, so a
// tag removed between resolution and commit is dropped instead of failing the write.
func linkTags(tx *gorm.DB, postID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	return tx.Exec(
		`INSERT INTO post_tag (post_id, tag_id) SELECT ?, id FROM tag WHERE id IN ?`,
		postID, tagIDs,
	).Error
}
