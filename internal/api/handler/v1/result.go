package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/domain"
)

type TallyService interface {
	TallyByCandidate(ctx context.Context, electionID int64) []domain.TallyRow
	TallyByConstituency(ctx context.Context, electionID, constituencyID int64) []domain.TallyRow
}

type ResultHandler struct {
	elections ElectionReader
	tallies   TallyService
}

func NewResultHandler(elections ElectionReader, tallies TallyService) *ResultHandler {
	return &ResultHandler{
		elections: elections,
		tallies:   tallies,
	}
}

func (h *ResultHandler) election(ctx *gin.Context) (int64, *response.Err) {
	id, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		return 0, respErr
	}

	if _, err := h.elections.GetElection(ctx.Request.Context(), id); err != nil {
		return 0, serviceErr("h.elections.GetElection", err, "electionID", id)
	}

	return id, nil
}

func (h *ResultHandler) HandleGetResults(ctx *gin.Context) {
	electionID, respErr := h.election(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, h.tallies.TallyByCandidate(ctx.Request.Context(), electionID))
}

func (h *ResultHandler) HandleGetConstituencyResults(ctx *gin.Context) {
	electionID, respErr := h.election(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	constituencyID, respErr := parseID(ctx, "constituencyID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, h.tallies.TallyByConstituency(ctx.Request.Context(), electionID, constituencyID))
}
