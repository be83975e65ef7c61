package v1

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/domain"
)

type CandidateService interface {
	AddCandidate(ctx context.Context, candidate domain.Candidate) (domain.Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error
	ListCandidates(ctx context.Context, electionID int64) ([]domain.Candidate, error)
	GetCandidateSymbol(ctx context.Context, id int64) ([]byte, error)
}

type CandidateHandler struct {
	svc CandidateService
}

func NewCandidateHandler(svc CandidateService) *CandidateHandler {
	return &CandidateHandler{
		svc: svc,
	}
}

func (h *CandidateHandler) HandleCreateCandidate(ctx *gin.Context) {
	var req request.CreateCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	symbol, err := base64.StdEncoding.DecodeString(req.Symbol)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("symbol: %w", err)))
		return
	}

	candidate, err := h.svc.AddCandidate(ctx.Request.Context(), domain.Candidate{
		FullName:       req.FullName,
		PartyName:      req.PartyName,
		ConstituencyID: req.ConstituencyID,
		ElectionID:     req.ElectionID,
		Symbol:         symbol,
		VoterID:        req.VoterID,
	})
	if err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.AddCandidate", err, "electionID", req.ElectionID))
		return
	}

	ctx.JSON(http.StatusCreated, candidate)
}

// HandleListCandidates lists every candidate, or one election's when
// election_id is given.
func (h *CandidateHandler) HandleListCandidates(ctx *gin.Context) {
	var electionID int64
	if raw := ctx.Query("election_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("election_id: %w", errInvalidID)))
			return
		}
		electionID = id
	}

	candidates, err := h.svc.ListCandidates(ctx.Request.Context(), electionID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCandidates -> h.svc.ListCandidates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

func (h *CandidateHandler) HandleDeleteCandidate(ctx *gin.Context) {
	id, respErr := parseID(ctx, "candidateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteCandidate(ctx.Request.Context(), id); err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.DeleteCandidate", err, "candidateID", id))
		return
	}

	ctx.JSON(http.StatusOK, response.DeleteResponse{
		Message: fmt.Sprintf("candidate %d deleted", id),
	})
}

// HandleGetSymbol serves the stored symbol bytes as they were uploaded.
func (h *CandidateHandler) HandleGetSymbol(ctx *gin.Context) {
	id, respErr := parseID(ctx, "candidateID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	symbol, err := h.svc.GetCandidateSymbol(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, serviceErr("h.svc.GetCandidateSymbol", err, "candidateID", id))
		return
	}
	if len(symbol) == 0 {
		response.RenderErr(ctx, response.ErrNotFound("symbol", "candidateID", id))
		return
	}

	ctx.Data(http.StatusOK, http.DetectContentType(symbol), symbol)
}
