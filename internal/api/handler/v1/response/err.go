package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every error response.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	StatusText     string `json:"status"`
	ErrorText      string `json:"error,omitempty"`

	err error
}

func (e *Err) Error() string {
	return fmt.Sprintf("%d %s: %v", e.HTTPStatusCode, e.StatusText, e.err)
}

func (e *Err) Unwrap() error {
	return e.err
}

// RenderErr aborts the request with e. Server errors are logged with their
// cause and returned without it.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("requestID", requestid.Get(ctx)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error, text string) *Err {
	return &Err{
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorText:      text,
		err:            err,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrUnauthorized(err error) *Err {
	return newErr(http.StatusUnauthorized, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "wrong credentials")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "permission denied")
}

func ErrNotFound(entity, key string, value any) *Err {
	err := fmt.Errorf("%s with %s %v not found", entity, key, value)

	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "")
}
