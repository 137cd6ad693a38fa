package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
)

func TestStatusForCode(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeValidation:      http.StatusBadRequest,
		domainagg.CodeIDMismatch:      http.StatusBadRequest,
		domainagg.CodeInvalidArgument: http.StatusBadRequest,
		domainagg.CodeUnauthenticated: http.StatusUnauthorized,
		domainagg.CodeForbidden:       http.StatusForbidden,
		domainagg.CodeNotFound:        http.StatusNotFound,
		domainagg.CodeConflict:        http.StatusConflict,
		domainagg.CodeCanceled:        http.StatusRequestTimeout,
		domainagg.CodeInternal:        http.StatusInternalServerError,
		"something_else":              http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusForCode(code), "code %q", code)
	}
}

func TestRespondAggregateErrorValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	err := domainagg.NewValidationError("Publishing.Post.Create", []domainagg.FieldViolation{
		{Field: "title", Reason: "required"},
		{Field: "slug", Reason: "slug"},
	})
	RespondAggregateError(c, err)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "validation", env.Error.Code)
	require.Len(t, env.Error.Fields, 2)
	assert.Equal(t, "title", env.Error.Fields[0].Field)
	assert.Equal(t, "slug", env.Error.Fields[1].Reason)
}

func TestRespondAggregateErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAggregateError(c, domainagg.Wrap(domainagg.CodeInternal, "op", errors.New("pq: password authentication failed")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), `"code":"internal"`)
}

func TestRespondAggregateErrorPlainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	RespondAggregateError(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
