package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/postboard-backend/internal/data/repos"
	"github.com/yungbote/postboard-backend/internal/platform/ctxutil"
	"github.com/yungbote/postboard-backend/internal/platform/dbctx"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the access token payload. Subject carries the user id.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// IdentityService verifies bearer tokens and attaches the caller to the context.
type IdentityService interface {
	Authenticate(ctx context.Context, tokenString string) (context.Context, error)
	IssueToken(userID uuid.UUID, userName string) (string, error)
	GetAccessTTL() time.Duration
}

type IdentityConfig struct {
	SecretKey string
	Issuer    string
	AccessTTL time.Duration
	Leeway    time.Duration
}

type identityService struct {
	log   *logger.Logger
	users repos.UserRepo
	cfg   IdentityConfig

	// synced remembers the last name written per user so repeat requests skip the upsert.
	synced sync.Map
}

func NewIdentityService(log *logger.Logger, users repos.UserRepo, cfg IdentityConfig) (IdentityService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("jwt secret key is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.Leeway < 0 {
		cfg.Leeway = 0
	}
	return &identityService{
		log:   log.With("service", "IdentityService"),
		users: users,
		cfg:   cfg,
	}, nil
}

func (s *identityService) GetAccessTTL() time.Duration { return s.cfg.AccessTTL }

func (s *identityService) IssueToken(userID uuid.UUID, userName string) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("user id is required")
	}
	now := time.Now()
	claims := Claims{
		Name: strings.TrimSpace(userName),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.SecretKey))
}

func (s *identityService) Authenticate(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.cfg.Leeway),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return ctx, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	s.syncUser(ctx, userID, claims.Name)
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      userID,
		UserName:    claims.Name,
		TokenString: tokenString,
	}), nil
}

// syncUser mirrors the token's display name into the user table. Failures are
// logged; authorship does not depend on the mirror.
func (s *identityService) syncUser(ctx context.Context, id uuid.UUID, name string) {
	if s.users == nil {
		return
	}
	if prev, ok := s.synced.Load(id); ok && prev.(string) == name {
		return
	}
	if err := s.users.Upsert(dbctx.Context{Ctx: ctx}, id, name); err != nil {
		s.log.Warn("user sync failed", "user_id", id, "error", err)
		return
	}
	s.synced.Store(id, name)
}
