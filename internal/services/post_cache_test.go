package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/observability"
)

// gatedAggregate pauses the first Get after it has read the row until release is closed.
type gatedAggregate struct {
	fakeAggregate

	once    sync.Once
	read    chan struct{}
	release chan struct{}

	deleted bool
	title   string
}

func newGatedAggregate(title string) *gatedAggregate {
	return &gatedAggregate{
		read:    make(chan struct{}),
		release: make(chan struct{}),
		title:   title,
	}
}

func (g *gatedAggregate) Get(ctx context.Context, id uint) (types.Output, error) {
	g.mu.Lock()
	g.gets++
	deleted, title := g.deleted, g.title
	g.mu.Unlock()
	if deleted {
		return types.Output{}, domainagg.NewError(domainagg.CodeNotFound, "Publishing.Post.Get", "post not found", nil)
	}
	out := types.Output{ID: id, Title: title, Tags: []types.ShortTag{}}

	paused := false
	g.once.Do(func() { paused = true })
	if paused {
		close(g.read)
		select {
		case <-g.release:
		case <-ctx.Done():
			return types.Output{}, domainagg.Wrap(domainagg.CodeCanceled, "Publishing.Post.Get", ctx.Err())
		}
	}
	return out, nil
}

func (g *gatedAggregate) Update(_ context.Context, in domainagg.UpdatePostInput) (types.Output, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.title = in.Post.Title
	return types.Output{ID: in.PostID, Title: in.Post.Title, Tags: []types.ShortTag{}}, nil
}

func (g *gatedAggregate) Delete(context.Context, domainagg.DeletePostInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleted = true
	return nil
}

func newGatedPostService(agg *gatedAggregate, cache *mapCache) PostService {
	return NewPostService(PostServiceDeps{
		Posts:   agg,
		Cache:   cache,
		Events:  &recordingPublisher{},
		Metrics: observability.NewMetrics(),
	})
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestPostServiceGetDoesNotCacheAcrossDelete(t *testing.T) {
	agg := newGatedAggregate("old")
	cache := newMapCache()
	svc := newGatedPostService(agg, cache)
	ctx := context.Background()

	type result struct {
		out types.Output
		err error
	}
	first := make(chan result, 1)
	go func() {
		out, err := svc.Get(ctx, 1)
		first <- result{out, err}
	}()
	waitClosed(t, agg.read, "read")

	if err := svc.Delete(ctx, uuid.New(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	close(agg.release)
	if r := <-first; r.err != nil || r.out.Title != "old" {
		t.Fatalf("in-flight Get: %+v %v", r.out, r.err)
	}

	if _, ok := cache.data["post:1"]; ok {
		t.Fatal("read from before the delete must not be cached")
	}
	_, err := svc.Get(ctx, 1)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("Get after delete: want not_found, got %v", err)
	}
}

func TestPostServiceGetDoesNotCacheAcrossUpdate(t *testing.T) {
	agg := newGatedAggregate("old")
	cache := newMapCache()
	svc := newGatedPostService(agg, cache)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Get(ctx, 1)
	}()
	waitClosed(t, agg.read, "read")

	if _, err := svc.Update(ctx, uuid.New(), 1, types.UpdateInput{ID: 1, Title: "new"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	close(agg.release)
	waitClosed(t, done, "in-flight Get")

	out, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Title != "new" {
		t.Fatalf("Get after update: want new, got %q", out.Title)
	}
}

func TestPostServiceGetCancelIsPerCaller(t *testing.T) {
	agg := newGatedAggregate("shared")
	svc := newGatedPostService(agg, newMapCache())

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Get(firstCtx, 4)
		firstErr <- err
	}()
	waitClosed(t, agg.read, "read")

	type result struct {
		out types.Output
		err error
	}
	second := make(chan result, 1)
	go func() {
		out, err := svc.Get(context.Background(), 4)
		second <- result{out, err}
	}()
	time.Sleep(20 * time.Millisecond) // let the second caller join the in-flight load

	cancel()
	if err := <-firstErr; !domainagg.IsCode(err, domainagg.CodeCanceled) {
		t.Fatalf("canceled caller: want canceled, got %v", err)
	}
	close(agg.release)

	select {
	case r := <-second:
		if r.err != nil {
			t.Fatalf("live caller: unexpected error %v", r.err)
		}
		if r.out.Title != "shared" {
			t.Fatalf("live caller: unexpected %+v", r.out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("live caller never returned")
	}
}

func TestPostServiceGetRejectsCanceledContext(t *testing.T) {
	agg := newGatedAggregate("x")
	svc := newGatedPostService(agg, newMapCache())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Get(ctx, 2); !domainagg.IsCode(err, domainagg.CodeCanceled) {
		t.Fatalf("want canceled, got %v", err)
	}
	if agg.gets != 0 {
		t.Fatalf("canceled Get should not reach the aggregate, gets=%d", agg.gets)
	}
}
