package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/postboard-backend/internal/data/repos"
	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	"github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
)

// TagResolver maps requested tag ids to the tags that exist right now.
type TagResolver interface {
	Resolve(dbc dbctx.Context, ids []uint) ([]*publishing.Tag, error)
}

type PostAggregateDeps struct {
	Base BaseDeps

	Posts repos.PostRepo
	Tags  TagResolver
}

type postAggregate struct {
	deps PostAggregateDeps
}

func NewPostAggregate(deps PostAggregateDeps) domainagg.PostAggregate {
	deps.Base = deps.Base.withDefaults()
	return &postAggregate{deps: deps}
}

func (a *postAggregate) Contract() domainagg.Contract {
	return domainagg.PostAggregateContract
}

const postTable = "post"

func (a *postAggregate) configured(op string) error {
	if a.deps.Posts == nil || a.deps.Tags == nil {
		return domainagg.NewError(domainagg.CodeInternal, op, "post aggregate repos not configured", nil)
	}
	return nil
}

func (a *postAggregate) List(ctx context.Context) ([]publishing.Output, error) {
	const op = "Publishing.Post.List"
	out := []publishing.Output{}
	if err := a.configured(op); err != nil {
		return out, reject(a.deps.Base, op, err)
	}
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rows, err := a.deps.Posts.ListAll(dbc, repos.IncludeAll)
		if err != nil {
			return err
		}
		for _, p := range rows {
			withAuthorFallback(p)
		}
		out = publishing.ToOutputs(rows)
		return nil
	})
	if err != nil {
		return []publishing.Output{}, err
	}
	return out, nil
}

func (a *postAggregate) Get(ctx context.Context, id uint) (publishing.Output, error) {
	const op = "Publishing.Post.Get"
	var out publishing.Output
	if err := a.configured(op); err != nil {
		return out, reject(a.deps.Base, op, err)
	}
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		p, err := a.deps.Posts.GetByID(dbc, id, repos.IncludeAll)
		if err != nil {
			return err
		}
		if p == nil {
			return postNotFound(op, id)
		}
		out = publishing.ToOutput(withAuthorFallback(p))
		return nil
	})
	return out, err
}

func (a *postAggregate) Create(ctx context.Context, in domainagg.CreatePostInput) (publishing.Output, error) {
	const op = "Publishing.Post.Create"
	var out publishing.Output
	if err := a.configured(op); err != nil {
		return out, reject(a.deps.Base, op, err)
	}
	if in.ActorID == uuid.Nil {
		return out, reject(a.deps.Base, op, unauthenticated(op))
	}
	if fields := publishing.ValidateCreate(in.Post); len(fields) > 0 {
		return out, reject(a.deps.Base, op, validationFailed(op, fields))
	}
	post, err := publishing.ToPersisted(in.Post, in.ActorID)
	if err != nil {
		return out, reject(a.deps.Base, op, err)
	}

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		tags, err := a.deps.Tags.Resolve(dbc, in.Post.SelectedTagIDs)
		if err != nil {
			return err
		}
		post.Tags = tags
		if err := a.deps.Posts.Create(dbc, post); err != nil {
			return err
		}
		saved, err := a.deps.Posts.GetByID(dbc, post.ID, repos.IncludeAll)
		if err != nil {
			return err
		}
		if saved == nil {
			return domainagg.NewError(domainagg.CodeInternal, op, "created post could not be reloaded", nil)
		}
		out = publishing.ToOutput(withAuthorFallback(saved))
		return nil
	})
	if err != nil {
		return publishing.Output{}, err
	}
	a.deps.Base.Log.Debug("post created", "post_id", out.ID, "author_id", in.ActorID, "tags", len(out.Tags))
	return out, nil
}

func (a *postAggregate) Update(ctx context.Context, in domainagg.UpdatePostInput) (publishing.Output, error) {
	const op = "Publishing.Post.Update"
	var out publishing.Output
	if err := a.configured(op); err != nil {
		return out, reject(a.deps.Base, op, err)
	}
	if in.PostID != in.Post.ID {
		return out, reject(a.deps.Base, op, domainagg.NewError(domainagg.CodeIDMismatch, op,
			fmt.Sprintf("path id %d does not match body id %d", in.PostID, in.Post.ID), nil))
	}
	if in.ActorID == uuid.Nil {
		return out, reject(a.deps.Base, op, unauthenticated(op))
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Posts.GetByID(dbc, in.PostID, repos.PostInclude{})
		if err != nil {
			return err
		}
		if existing == nil {
			return postNotFound(op, in.PostID)
		}
		if existing.AuthorID != in.ActorID {
			return forbidden(op, in.PostID)
		}
		if fields := publishing.ValidateUpdate(in.Post); len(fields) > 0 {
			return validationFailed(op, fields)
		}
		if err := publishing.ApplyUpdate(existing, in.Post); err != nil {
			return err
		}
		tags, err := a.deps.Tags.Resolve(dbc, in.Post.SelectedTagIDs)
		if err != nil {
			return err
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, postTable, existing.ID, existing.Version, map[string]any{
			"title":      existing.Title,
			"slug":       existing.Slug,
			"content":    existing.Content,
			"updated_at": a.deps.Base.Now(),
			"version":    existing.Version + 1,
		})
		if err != nil {
			return err
		}
		if !ok {
			stillThere, err := a.deps.Posts.Exists(dbc, existing.ID)
			if err != nil {
				return err
			}
			if !stillThere {
				return postNotFound(op, existing.ID)
			}
			return RequireCASSuccess(false, "post changed since it was read")
		}

		if err := a.deps.Posts.ReplaceTags(dbc, existing.ID, tagIDs(tags)); err != nil {
			return err
		}
		saved, err := a.deps.Posts.GetByID(dbc, existing.ID, repos.IncludeAll)
		if err != nil {
			return err
		}
		if saved == nil {
			return postNotFound(op, existing.ID)
		}
		out = publishing.ToOutput(withAuthorFallback(saved))
		return nil
	})
	if err != nil {
		return publishing.Output{}, err
	}
	return out, nil
}

func (a *postAggregate) Delete(ctx context.Context, in domainagg.DeletePostInput) error {
	const op = "Publishing.Post.Delete"
	if err := a.configured(op); err != nil {
		return reject(a.deps.Base, op, err)
	}
	if in.ActorID == uuid.Nil {
		return reject(a.deps.Base, op, unauthenticated(op))
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		existing, err := a.deps.Posts.GetByID(dbc, in.PostID, repos.PostInclude{})
		if err != nil {
			return err
		}
		if existing == nil {
			return postNotFound(op, in.PostID)
		}
		if existing.AuthorID != in.ActorID {
			return forbidden(op, in.PostID)
		}
		n, err := a.deps.Posts.Delete(dbc, existing.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return postNotFound(op, in.PostID)
		}
		return nil
	})
}

func (a *postAggregate) EditForm(ctx context.Context, in domainagg.EditPostInput) (publishing.UpdateInput, error) {
	const op = "Publishing.Post.EditForm"
	var out publishing.UpdateInput
	if err := a.configured(op); err != nil {
		return out, reject(a.deps.Base, op, err)
	}
	if in.ActorID == uuid.Nil {
		return out, reject(a.deps.Base, op, unauthenticated(op))
	}
	err := executeRead(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		p, err := a.deps.Posts.GetByID(dbc, in.PostID, repos.PostInclude{Tags: true})
		if err != nil {
			return err
		}
		if p == nil {
			return postNotFound(op, in.PostID)
		}
		if p.AuthorID != in.ActorID {
			return forbidden(op, in.PostID)
		}
		out = publishing.ToUpdateInput(p)
		return nil
	})
	return out, err
}

// withAuthorFallback keeps the author id visible when the user row was never synced.
func withAuthorFallback(p *publishing.Post) *publishing.Post {
	if p != nil && p.Author == nil && p.AuthorID != uuid.Nil {
		p.Author = &publishing.User{ID: p.AuthorID}
	}
	return p
}

func tagIDs(tags []*publishing.Tag) []uint {
	ids := make([]uint, 0, len(tags))
	for _, t := range tags {
		if t != nil {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func unauthenticated(op string) error {
	return domainagg.NewError(domainagg.CodeUnauthenticated, op, "no authenticated caller", nil)
}

func forbidden(op string, id uint) error {
	return domainagg.NewError(domainagg.CodeForbidden, op, fmt.Sprintf("post %d belongs to another author", id), nil)
}

func postNotFound(op string, id uint) error {
	return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("post not found: %d", id), nil)
}

func validationFailed(op string, fields []publishing.FieldError) error {
	violations := make([]domainagg.FieldViolation, 0, len(fields))
	for _, f := range fields {
		violations = append(violations, domainagg.FieldViolation{Field: f.Field, Reason: f.Reason})
	}
	return domainagg.NewValidationError(op, violations)
}
