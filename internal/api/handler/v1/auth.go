package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/config"
	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/evoting-api/internal/service"
)

type AuthService interface {
	LoginVoter(ctx context.Context, identity, password string) (domain.Voter, error)
	LoginAdmin(ctx context.Context, username, password string) (domain.Admin, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleVoterLogin logs a voter in by national id or voter id.
func (h *AuthHandler) HandleVoterLogin(ctx *gin.Context) {
	req := request.VoterLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	voter, err := h.svc.LoginVoter(ctx.Request.Context(), req.Identity, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrVoterNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleVoterLogin -> h.svc.LoginVoter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.renderToken(ctx, voter.ID, jwthelper.RoleVoter, voter)
}

func (h *AuthHandler) HandleAdminLogin(ctx *gin.Context) {
	req := request.AdminLoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.LoginAdmin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleAdminLogin -> h.svc.LoginAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	h.renderToken(ctx, admin.ID, jwthelper.RoleAdmin, admin)
}

func (h *AuthHandler) renderToken(ctx *gin.Context, subjectID int64, role string, user any) {
	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), subjectID, role, ctx.Request.UserAgent(), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.renderToken -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		Role:  role,
		User:  user,
	})
}
