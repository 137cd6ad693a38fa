package services

import (
	"github.com/yungbote/postboard-backend/internal/data/repos"
	types "github.com/yungbote/postboard-backend/internal/domain/publishing"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

// TagResolver turns requested ids into the tags that exist. Unknown ids are
// dropped without error and tags are never created.
type TagResolver interface {
	Resolve(dbc dbctx.Context, ids []uint) ([]*types.Tag, error)
}

type tagResolver struct {
	tags repos.TagRepo
	log  *logger.Logger
}

func NewTagResolver(tags repos.TagRepo, log *logger.Logger) TagResolver {
	return &tagResolver{tags: tags, log: log.With("service", "TagResolver")}
}

func (r *tagResolver) Resolve(dbc dbctx.Context, ids []uint) ([]*types.Tag, error) {
	wanted := dedupeIDs(ids)
	if len(wanted) == 0 {
		return []*types.Tag{}, nil
	}
	found, err := r.tags.GetByIDs(dbc, wanted)
	if err != nil {
		return nil, err
	}
	if dropped := len(wanted) - len(found); dropped > 0 {
		r.log.Debug("unknown tag ids dropped", "requested", len(wanted), "dropped", dropped)
	}
	return found, nil
}

func dedupeIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
