package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/postboard-backend/internal/platform/ctxutil"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
	"github.com/yungbote/postboard-backend/internal/services"
)

type stubIdentity struct {
	userID uuid.UUID
	err    error
	got    string
}

func (s *stubIdentity) Authenticate(ctx context.Context, token string) (context.Context, error) {
	s.got = token
	if s.err != nil {
		return ctx, s.err
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: s.userID, TokenString: token}), nil
}

func (s *stubIdentity) IssueToken(uuid.UUID, string) (string, error) { return "", nil }
func (s *stubIdentity) GetAccessTTL() time.Duration                  { return time.Hour }

func authRouter(id services.IdentityService, seen *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(logger.NewNop(), id).RequireAuth())
	r.GET("/private", func(c *gin.Context) {
		*seen = ctxutil.CurrentUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	user := uuid.New()
	cases := []struct {
		name   string
		header string
		stub   *stubIdentity
		status int
	}{
		{"missing header", "", &stubIdentity{userID: user}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", &stubIdentity{userID: user}, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", &stubIdentity{err: services.ErrInvalidToken}, http.StatusUnauthorized},
		{"nil subject", "Bearer ok", &stubIdentity{userID: uuid.Nil}, http.StatusUnauthorized},
		{"valid", "bearer ok", &stubIdentity{userID: user}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var seen uuid.UUID
			r := authRouter(tc.stub, &seen)
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d body=%s", tc.status, rec.Code, rec.Body.String())
			}
			if tc.status == http.StatusOK {
				if seen != user {
					t.Fatalf("caller not attached: %s", seen)
				}
				if tc.stub.got != "ok" {
					t.Fatalf("token not forwarded: %q", tc.stub.got)
				}
			}
		})
	}
}
