package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/postboard-backend/internal/domain/aggregates"
	"github.com/yungbote/postboard-backend/internal/platform/apierr"
)

var statusByCode = map[domainagg.ErrorCode]int{
	domainagg.CodeValidation:      http.StatusBadRequest,
	domainagg.CodeIDMismatch:      http.StatusBadRequest,
	domainagg.CodeInvalidArgument: http.StatusBadRequest,
	domainagg.CodeUnauthenticated: http.StatusUnauthorized,
	domainagg.CodeForbidden:       http.StatusForbidden,
	domainagg.CodeNotFound:        http.StatusNotFound,
	domainagg.CodeConflict:        http.StatusConflict,
	domainagg.CodeCanceled:        http.StatusRequestTimeout,
	domainagg.CodeInternal:        http.StatusInternalServerError,
}

// StatusForCode returns 500 for unknown codes.
func StatusForCode(code domainagg.ErrorCode) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AggregateAPIError converts an aggregate failure into a transport error.
// Internal causes are not echoed to clients.
func AggregateAPIError(err error) *apierr.Error {
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	status := StatusForCode(code)
	if status == http.StatusInternalServerError {
		return apierr.New(status, string(domainagg.CodeInternal), errors.New("internal error"))
	}

	msg := err.Error()
	var de *domainagg.Error
	if errors.As(err, &de) && de.Message != "" {
		msg = de.Message
	}
	out := apierr.New(status, string(code), errors.New(msg))
	for _, f := range domainagg.FieldsOf(err) {
		out = out.WithFields(apierr.FieldError{Field: f.Field, Reason: f.Reason})
	}
	return out
}

func RespondAggregateError(c *gin.Context, err error) {
	RespondAPIError(c, AggregateAPIError(err))
}
