package services

import (
	"context"
	"testing"

	"github.com/yungbote/postboard-backend/internal/data/repos"
	"github.com/yungbote/postboard-backend/internal/data/repos/testutil"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
)

func TestTagResolverReturnsExistingSubset(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	testutil.SeedTag(t, ctx, db, 1, "Go", "go")
	testutil.SeedTag(t, ctx, db, 2, "Databases", "databases")

	r := NewTagResolver(repos.NewTagRepo(db, testutil.Logger(t)), testutil.Logger(t))
	got, err := r.Resolve(dbctx.Context{Ctx: ctx}, []uint{2, 1, 999, 2, 0})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("Resolve: want tags [1 2], got %+v", got)
	}
}

func TestTagResolverEmptyInput(t *testing.T) {
	db := testutil.DB(t)
	r := NewTagResolver(repos.NewTagRepo(db, testutil.Logger(t)), testutil.Logger(t))
	for _, ids := range [][]uint{nil, {}, {0, 0}} {
		got, err := r.Resolve(dbctx.Context{Ctx: context.Background()}, ids)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", ids, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("Resolve(%v): want empty slice, got %v", ids, got)
		}
	}
}

func TestDedupeIDs(t *testing.T) {
	got := dedupeIDs([]uint{3, 0, 3, 1, 1, 2})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("dedupeIDs: got %v", got)
	}
}
