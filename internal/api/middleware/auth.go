package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/pkg/jwthelper"
)

const (
	ContextKeySubjectID = "subjectID"
	ContextKeyRole      = "role"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errUserAgent    = errors.New("token was issued to another user agent")
)

type Authenticator struct {
	key []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		key: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// token's subject and role in the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))
			return
		}

		if claims.UserAgent != "" && claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errUserAgent))
			return
		}

		subjectID, err := claims.SubjectID()
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeySubjectID, subjectID)
		ctx.Set(ContextKeyRole, claims.Role)
		ctx.Next()
	}
}

// RequireRole must run after VerifyJWT.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if got := ctx.GetString(ContextKeyRole); got != role {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %q is not %q", got, role)))
			return
		}

		ctx.Next()
	}
}

// SubjectID returns the id stored by VerifyJWT.
func SubjectID(ctx *gin.Context) (int64, bool) {
	id := ctx.GetInt64(ContextKeySubjectID)

	return id, id > 0
}
