package publishing

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput is everything a caller may set when creating a post.
type CreateInput struct {
	Title          string `json:"title" validate:"notblank,maxunits=256"`
	Slug           string `json:"slug" validate:"notblank,maxunits=256,slug"`
	Content        string `json:"content" validate:"notblank,maxunits=2048"`
	SelectedTagIDs []uint `json:"selected_tag_ids"`
}

// UpdateInput is everything a caller may change on an existing post.
type UpdateInput struct {
	ID             uint   `json:"id"`
	Title          string `json:"title" validate:"notblank,maxunits=256"`
	Slug           string `json:"slug" validate:"notblank,maxunits=256,slug"`
	Content        string `json:"content" validate:"notblank,maxunits=2048"`
	SelectedTagIDs []uint `json:"selected_tag_ids"`
}

type Output struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Slug      string       `json:"slug"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
	// Author is nil only for a post without an author id. When the user row is
	// missing the author carries the id with an empty user_name.
	Author    *ShortAuthor `json:"author,omitempty"`
	Tags      []ShortTag   `json:"tags"`
}

// ShortAuthor never links back to the author's posts.
type ShortAuthor struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user_name"`
}

type ShortTag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
