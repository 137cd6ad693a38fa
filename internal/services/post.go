package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	natsclient "github.com/yungbote/postboard-backend/internal/clients/nats"
	redisclient "github.com/yungbote/postboard-backend/internal/clients/redis"
	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/observability"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

const (
	EventPostCreated = "post.created"
	EventPostUpdated = "post.updated"
	EventPostDeleted = "post.deleted"
)

// PostEvent is published after a lifecycle write commits.
type PostEvent struct {
	Type       string        `json:"type"`
	PostID     uint          `json:"post_id"`
	ActorID    uuid.UUID     `json:"actor_id"`
	OccurredAt time.Time     `json:"occurred_at"`
	Post       *types.Output `json:"post,omitempty"`
}

// PostService fronts the post aggregate with a read cache and lifecycle events.
type PostService interface {
	List(ctx context.Context) ([]types.Output, error)
	Get(ctx context.Context, id uint) (types.Output, error)
	Create(ctx context.Context, actorID uuid.UUID, in types.CreateInput) (types.Output, error)
	Update(ctx context.Context, actorID uuid.UUID, id uint, in types.UpdateInput) (types.Output, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uint) error
	EditForm(ctx context.Context, actorID uuid.UUID, id uint) (types.UpdateInput, error)
}

type PostServiceDeps struct {
	Posts   domainagg.PostAggregate
	Cache   redisclient.Cache
	Events  natsclient.Publisher
	Metrics *observability.Metrics
	Log     *logger.Logger

	CacheTTL time.Duration
	// LoadTimeout bounds a coalesced cache-miss load, which runs detached from its callers.
	LoadTimeout   time.Duration
	SubjectPrefix string
}

type postService struct {
	deps  PostServiceDeps
	log   *logger.Logger
	group singleflight.Group

	// mu orders cache fills against invalidations. A fill is dropped when any
	// invalidation ran after its load started.
	mu         sync.Mutex
	generation uint64
}

func NewPostService(deps PostServiceDeps) PostService {
	if deps.Cache == nil {
		deps.Cache = redisclient.NewNoopCache()
	}
	if deps.Events == nil {
		deps.Events = natsclient.NewNoopPublisher()
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = 5 * time.Minute
	}
	if deps.LoadTimeout <= 0 {
		deps.LoadTimeout = 10 * time.Second
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.SubjectPrefix = strings.Trim(strings.TrimSpace(deps.SubjectPrefix), ".")
	return &postService{deps: deps, log: deps.Log.With("service", "PostService")}
}

func postCacheKey(id uint) string {
	return "post:" + strconv.FormatUint(uint64(id), 10)
}

func (s *postService) List(ctx context.Context) ([]types.Output, error) {
	return s.deps.Posts.List(ctx)
}

func (s *postService) Get(ctx context.Context, id uint) (types.Output, error) {
	if err := ctx.Err(); err != nil {
		return types.Output{}, domainagg.Wrap(domainagg.CodeCanceled, "Publishing.Post.Get", err)
	}
	key := postCacheKey(id)
	if out, ok := s.cached(ctx, key); ok {
		return out, nil
	}
	ch := s.group.DoChan(key, func() (any, error) {
		return s.load(ctx, key, id)
	})
	select {
	case <-ctx.Done():
		return types.Output{}, domainagg.Wrap(domainagg.CodeCanceled, "Publishing.Post.Get", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return types.Output{}, res.Err
		}
		return res.Val.(types.Output), nil
	}
}

// load is shared by every caller coalesced on key, so it does not inherit the
// first caller's cancellation.
func (s *postService) load(ctx context.Context, key string, id uint) (types.Output, error) {
	gen := s.currentGeneration()
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.deps.LoadTimeout)
	defer cancel()
	out, err := s.deps.Posts.Get(loadCtx, id)
	if err != nil {
		return types.Output{}, err
	}
	s.store(loadCtx, key, out, gen)
	return out, nil
}

func (s *postService) Create(ctx context.Context, actorID uuid.UUID, in types.CreateInput) (types.Output, error) {
	out, err := s.deps.Posts.Create(ctx, domainagg.CreatePostInput{ActorID: actorID, Post: in})
	if err != nil {
		return types.Output{}, err
	}
	s.publish(ctx, EventPostCreated, actorID, out.ID, &out)
	return out, nil
}

func (s *postService) Update(ctx context.Context, actorID uuid.UUID, id uint, in types.UpdateInput) (types.Output, error) {
	out, err := s.deps.Posts.Update(ctx, domainagg.UpdatePostInput{ActorID: actorID, PostID: id, Post: in})
	if err != nil {
		return types.Output{}, err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, EventPostUpdated, actorID, id, &out)
	return out, nil
}

func (s *postService) Delete(ctx context.Context, actorID uuid.UUID, id uint) error {
	if err := s.deps.Posts.Delete(ctx, domainagg.DeletePostInput{ActorID: actorID, PostID: id}); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.publish(ctx, EventPostDeleted, actorID, id, nil)
	return nil
}

func (s *postService) EditForm(ctx context.Context, actorID uuid.UUID, id uint) (types.UpdateInput, error) {
	return s.deps.Posts.EditForm(ctx, domainagg.EditPostInput{ActorID: actorID, PostID: id})
}

func (s *postService) cached(ctx context.Context, key string) (types.Output, bool) {
	raw, ok, err := s.deps.Cache.Get(ctx, key)
	if err != nil {
		s.deps.Metrics.IncCacheLookup("error")
		s.log.Warn("post cache read failed", "key", key, "error", err)
		return types.Output{}, false
	}
	if !ok {
		s.deps.Metrics.IncCacheLookup("miss")
		return types.Output{}, false
	}
	var out types.Output
	if err := json.Unmarshal(raw, &out); err != nil {
		s.deps.Metrics.IncCacheLookup("error")
		s.log.Warn("post cache entry unreadable", "key", key, "error", err)
		_ = s.deps.Cache.Del(ctx, key)
		return types.Output{}, false
	}
	if out.Tags == nil {
		out.Tags = []types.ShortTag{}
	}
	s.deps.Metrics.IncCacheLookup("hit")
	return out, true
}

func (s *postService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *postService) store(ctx context.Context, key string, out types.Output, gen uint64) {
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Debug("post cache fill dropped after invalidation", "key", key)
		return
	}
	if err := s.deps.Cache.Set(ctx, key, raw, s.deps.CacheTTL); err != nil {
		s.log.Warn("post cache write failed", "key", key, "error", err)
	}
}

// invalidate runs after commit; a stale entry left by a failed delete expires with its TTL.
func (s *postService) invalidate(ctx context.Context, id uint) {
	key := postCacheKey(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.group.Forget(key)
	if err := s.deps.Cache.Del(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn("post cache invalidation failed", "post_id", id, "error", err)
	}
}

func (s *postService) subject(eventType string) string {
	if s.deps.SubjectPrefix == "" {
		return eventType
	}
	return s.deps.SubjectPrefix + "." + eventType
}

// publish is best-effort: the write has already committed.
func (s *postService) publish(ctx context.Context, eventType string, actorID uuid.UUID, postID uint, out *types.Output) {
	subject := s.subject(eventType)
	raw, err := json.Marshal(PostEvent{
		Type:       eventType,
		PostID:     postID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Post:       out,
	})
	if err == nil {
		err = s.deps.Events.Publish(context.WithoutCancel(ctx), subject, raw)
	}
	s.deps.Metrics.IncEvent(subject, err == nil)
	if err != nil {
		s.log.Warn("post event publish failed", "subject", subject, "post_id", postID, "error", err)
	}
}
