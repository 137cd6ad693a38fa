package publishing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidArgument is returned when a translation cannot produce a valid post.
var ErrInvalidArgument = errors.New("publishing: invalid argument")

// ToPersisted builds a new, unsaved post owned by authorID. Tags are resolved
// separately; Version starts at zero and ID stays unassigned.
func ToPersisted(in CreateInput, authorID uuid.UUID) (*Post, error) {
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("%w: author id is required", ErrInvalidArgument)
	}
	return &Post{
		Title:    strings.TrimSpace(in.Title),
		Slug:     strings.TrimSpace(in.Slug),
		Content:  strings.TrimSpace(in.Content),
		AuthorID: authorID,
	}, nil
}

// ApplyUpdate copies the editable fields onto an existing post.
// Identity, author and timestamps are left alone.
func ApplyUpdate(post *Post, in UpdateInput) error {
	if post == nil {
		return fmt.Errorf("%w: post is nil", ErrInvalidArgument)
	}
	if post.ID != in.ID {
		return fmt.Errorf("%w: update id %d does not match post id %d", ErrInvalidArgument, in.ID, post.ID)
	}
	post.Title = strings.TrimSpace(in.Title)
	post.Slug = strings.TrimSpace(in.Slug)
	post.Content = strings.TrimSpace(in.Content)
	return nil
}

func ToOutput(post *Post) Output {
	if post == nil {
		return Output{Tags: []ShortTag{}}
	}
	return Output{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		Author:    ToShortAuthor(post.Author),
		Tags:      ToShortTags(post.Tags),
	}
}

// ToOutputs preserves input order and never returns nil.
func ToOutputs(posts []*Post) []Output {
	out := make([]Output, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		out = append(out, ToOutput(p))
	}
	return out
}

// ToUpdateInput prefills an edit form from a stored post.
func ToUpdateInput(post *Post) UpdateInput {
	if post == nil {
		return UpdateInput{SelectedTagIDs: []uint{}}
	}
	ids := make([]uint, 0, len(post.Tags))
	for _, t := range post.Tags {
		if t != nil {
			ids = append(ids, t.ID)
		}
	}
	return UpdateInput{
		ID:             post.ID,
		Title:          post.Title,
		Slug:           post.Slug,
		Content:        post.Content,
		SelectedTagIDs: ids,
	}
}

func ToShortAuthor(u *User) *ShortAuthor {
	if u == nil {
		return nil
	}
	return &ShortAuthor{ID: u.ID, UserName: u.UserName}
}

func ToShortTag(t *Tag) ShortTag {
	if t == nil {
		return ShortTag{}
	}
	return ShortTag{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func ToShortTags(tags []*Tag) []ShortTag {
	out := make([]ShortTag, 0, len(tags))
	for _, t := range tags {
		if t == nil {
			continue
		}
		out = append(out, ToShortTag(t))
	}
	return out
}
