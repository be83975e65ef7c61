package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/domain"
)

type ElectionService interface {
	CreateElection(ctx context.Context, title, startDate, endDate string) (domain.Election, error)
	GetElection(ctx context.Context, id int64) (domain.Election, error)
	ListElections(ctx context.Context) ([]domain.Election, error)
	DeleteElection(ctx context.Context, id int64) error
}

type ElectionHandler struct {
	svc ElectionService
}

func NewElectionHandler(svc ElectionService) *ElectionHandler {
	return &ElectionHandler{
		svc: svc,
	}
}

func (h *ElectionHandler) HandleListElections(ctx *gin.Context) {
	elections, err := h.svc.ListElections(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListElections -> h.svc.ListElections -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, elections)
}

func (h *ElectionHandler) HandleGetElection(ctx *gin.Context) {
	id, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	election, err := h.svc.GetElection(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.GetElection", err, "electionID", id))
		return
	}

	ctx.JSON(http.StatusOK, election)
}

func (h *ElectionHandler) HandleCreateElection(ctx *gin.Context) {
	var req request.CreateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	election, err := h.svc.CreateElection(ctx.Request.Context(), req.Title, req.StartDate, req.EndDate)
	if err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.CreateElection", err, "title", req.Title))
		return
	}

	ctx.JSON(http.StatusCreated, election)
}

// HandleDeleteElection removes the election with all its candidates and
// votes.
func (h *ElectionHandler) HandleDeleteElection(ctx *gin.Context) {
	id, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteElection(ctx.Request.Context(), id); err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.DeleteElection", err, "electionID", id))
		return
	}

	ctx.JSON(http.StatusOK, response.DeleteResponse{
		Message: fmt.Sprintf("election %d deleted", id),
	})
}
