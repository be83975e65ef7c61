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
)

func TestRenderErr(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cause := errors.New("connection reset")

	tests := []struct {
		name       string
		err        *Err
		wantStatus int
		wantText   string
	}{
		{name: "bad request", err: ErrBadRequest(errors.New("title: cannot be blank.")), wantStatus: http.StatusBadRequest, wantText: "title: cannot be blank."},
		{name: "not found", err: ErrNotFound("election", "electionID", 7), wantStatus: http.StatusNotFound, wantText: "election with electionID 7 not found"},
		{name: "conflict", err: ErrConflict(errors.New("already voted")), wantStatus: http.StatusConflict, wantText: "already voted"},
		{name: "credentials", err: ErrWrongCredentials(cause), wantStatus: http.StatusUnauthorized, wantText: "wrong credentials"},
		{name: "forbidden", err: ErrPermissionDenied(cause), wantStatus: http.StatusForbidden, wantText: "permission denied"},
		{name: "internal hides cause", err: ErrInternalServerError(cause), wantStatus: http.StatusInternalServerError, wantText: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RenderErr(ctx, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, ctx.IsAborted())

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, http.StatusText(tt.wantStatus), body["status"])
			assert.Equal(t, tt.wantText, body["error"])
			assert.NotContains(t, w.Body.String(), "connection reset")
		})
	}
}

func TestErr_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	assert.ErrorIs(t, ErrInternalServerError(cause), cause)
}
