package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/domain"
)

type VoterService interface {
	ListVoters(ctx context.Context) ([]domain.Voter, error)
	ListConstituencies(ctx context.Context) ([]domain.Constituency, error)
}

// AdminHandler serves the read-only administrator listings.
type AdminHandler struct {
	voters    VoterService
	votes     VoteService
	elections ElectionReader
}

func NewAdminHandler(voters VoterService, votes VoteService, elections ElectionReader) *AdminHandler {
	return &AdminHandler{
		voters:    voters,
		votes:     votes,
		elections: elections,
	}
}

func (h *AdminHandler) HandleListVoters(ctx *gin.Context) {
	voters, err := h.voters.ListVoters(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListVoters -> h.voters.ListVoters -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, voters)
}

func (h *AdminHandler) HandleListConstituencies(ctx *gin.Context) {
	constituencies, err := h.voters.ListConstituencies(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListConstituencies -> h.voters.ListConstituencies -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, constituencies)
}

func (h *AdminHandler) HandleListVotes(ctx *gin.Context) {
	electionID, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.elections.GetElection(ctx.Request.Context(), electionID); err != nil {
		response.RenderErr(ctx, serviceErr("h.elections.GetElection", err, "electionID", electionID))
		return
	}

	votes, err := h.votes.ListVotesByElection(ctx.Request.Context(), electionID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListVotes -> h.votes.ListVotesByElection -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, votes)
}
