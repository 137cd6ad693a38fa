package publishing

import (
	"time"

	"github.com/google/uuid"
)

// Post is the persisted post row. Tags are joined through post_tag.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"column:title;size:256;not null" json:"title"`
	Slug     string    `gorm:"column:slug;size:256;not null;index" json:"slug"`
	Content  string    `gorm:"column:content;size:2048;not null" json:"content"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
	Author   *User     `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Tags     []*Tag    `gorm:"many2many:post_tag;joinForeignKey:PostID;joinReferences:TagID" json:"tags,omitempty"`

	// Version backs optimistic concurrency; bumped on every update.
	Version int `gorm:"column:version;not null" json:"-"`

	CreatedAt time.Time  `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

func (Post) TableName() string { return "post" }

// Tag rows are owned elsewhere; this service only reads them.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:128;not null" json:"name"`
	Slug      string    `gorm:"column:slug;size:128;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string { return "tag" }

type PostTag struct {
	PostID uint `gorm:"primaryKey;column:post_id;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;column:tag_id;autoIncrement:false;index"`
}

func (PostTag) TableName() string { return "post_tag" }

// User mirrors the identity provider's subject so posts can join an author.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;size:256;not null" json:"user_name"`
	Posts     []*Post   `gorm:"foreignKey:AuthorID;references:ID" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "user" }
