package aggregates

import (
	"context"

	"github.com/google/uuid"
	"github.com/yungbote/postboard-backend/internal/domain/publishing"
)

var PostAggregateContract = Contract{
	Name:             "Publishing.PostAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns post fields, authorship and the post_tag association set.",
}

// PostAggregate owns the post lifecycle.
//
// Failures are *aggregates.Error with codes:
// CodeValidation, CodeUnauthenticated, CodeForbidden, CodeNotFound, CodeIDMismatch,
// CodeConflict, CodeCanceled, CodeInternal.
type PostAggregate interface {
	Aggregate

	// List returns every post with author and tags, ordered by id.
	List(ctx context.Context) ([]publishing.Output, error)

	Get(ctx context.Context, id uint) (publishing.Output, error)

	// Create persists a post owned by the actor with the existing subset of the selected tags.
	Create(ctx context.Context, in CreatePostInput) (publishing.Output, error)

	// Update replaces the editable fields and the full tag set of the actor's own post.
	Update(ctx context.Context, in UpdatePostInput) (publishing.Output, error)

	// Delete removes the actor's own post and its tag associations. Tags survive.
	Delete(ctx context.Context, in DeletePostInput) error

	// EditForm loads the actor's own post as a prefilled update input.
	EditForm(ctx context.Context, in EditPostInput) (publishing.UpdateInput, error)
}

type CreatePostInput struct {
	ActorID uuid.UUID
	Post    publishing.CreateInput
}

// UpdatePostInput carries the path id separately so mismatches with the body id are caught.
type UpdatePostInput struct {
	ActorID uuid.UUID
	PostID  uint
	Post    publishing.UpdateInput
}

type DeletePostInput struct {
	ActorID uuid.UUID
	PostID  uint
}

type EditPostInput struct {
	ActorID uuid.UUID
	PostID  uint
}
