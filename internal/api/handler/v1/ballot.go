package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/api/middleware"
	"github.com/vietanh2810/evoting-api/internal/domain"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/service"
)

var (
	errNoSubject       = errors.New("no authenticated voter")
	errNotOnBallot     = errors.New("candidate is not on your ballot")
	errNoCandidatesFor = errors.New("no candidates available for your constituency")
)

type BallotService interface {
	ResolveBallotForVoter(ctx context.Context, voterID, electionID int64) (domain.Ballot, error)
}

type VoteService interface {
	CastVote(ctx context.Context, electionID, voterID, candidateID int64) (domain.Vote, error)
	FindMyVote(ctx context.Context, electionID, voterID int64) (domain.Vote, error)
	ListVotesByElection(ctx context.Context, electionID int64) ([]domain.VoteRecord, error)
}

type ElectionReader interface {
	GetElection(ctx context.Context, id int64) (domain.Election, error)
}

// BallotHandler serves the authenticated voter's ballot and vote.
type BallotHandler struct {
	elections ElectionReader
	ballots   BallotService
	votes     VoteService
	metrics   *metrics.Metrics
}

func NewBallotHandler(elections ElectionReader, ballots BallotService, votes VoteService, m *metrics.Metrics) *BallotHandler {
	return &BallotHandler{
		elections: elections,
		ballots:   ballots,
		votes:     votes,
		metrics:   m,
	}
}

// ballot resolves the caller's ballot for the :electionID in the path.
func (h *BallotHandler) ballot(ctx *gin.Context) (domain.Ballot, *response.Err) {
	voterID, ok := middleware.SubjectID(ctx)
	if !ok {
		return domain.Ballot{}, response.ErrUnauthorized(errNoSubject)
	}

	electionID, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		return domain.Ballot{}, respErr
	}

	if _, err := h.elections.GetElection(ctx.Request.Context(), electionID); err != nil {
		return domain.Ballot{}, serviceErr("h.elections.GetElection", err, "electionID", electionID)
	}

	ballot, err := h.ballots.ResolveBallotForVoter(ctx.Request.Context(), voterID, electionID)
	if err != nil {
		return domain.Ballot{}, serviceErr("h.ballots.ResolveBallotForVoter", err, "voterID", voterID)
	}

	return ballot, nil
}

func (h *BallotHandler) HandleGetBallot(ctx *gin.Context) {
	ballot, respErr := h.ballot(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, ballot)
}

// HandleCastVote records the caller's vote. The candidate must be on the
// caller's ballot.
func (h *BallotHandler) HandleCastVote(ctx *gin.Context) {
	var req request.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ballot, respErr := h.ballot(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if ballot.HasVoted {
		h.metrics.VotesRejected.WithLabelValues(metrics.ReasonAlreadyVoted).Inc()
		response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyVoted))
		return
	}

	if ballot.NoCandidates {
		h.metrics.VotesRejected.WithLabelValues(metrics.ReasonNotEligible).Inc()
		response.RenderErr(ctx, response.ErrBadRequest(errNoCandidatesFor))
		return
	}

	if !ballot.Offers(req.CandidateID) {
		h.metrics.VotesRejected.WithLabelValues(metrics.ReasonNotEligible).Inc()
		response.RenderErr(ctx, response.ErrBadRequest(errNotOnBallot))
		return
	}

	vote, err := h.votes.CastVote(ctx.Request.Context(), ballot.ElectionID, ballot.Voter.ID, req.CandidateID)
	if err != nil {
		response.RenderErr(ctx, serviceErr("h.votes.CastVote", err, "electionID", ballot.ElectionID))
		return
	}

	ctx.JSON(http.StatusCreated, vote)
}

func (h *BallotHandler) HandleGetMyVote(ctx *gin.Context) {
	voterID, ok := middleware.SubjectID(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoSubject))
		return
	}

	electionID, respErr := parseID(ctx, "electionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	vote, err := h.votes.FindMyVote(ctx.Request.Context(), electionID, voterID)
	if err != nil {
		if errors.Is(err, service.ErrVoteNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("vote", "electionID", electionID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyVote -> h.votes.FindMyVote -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, vote)
}
