package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/evoting-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/evoting-api/internal/service"
)

var errInvalidID = errors.New("must be a positive integer")

// parseID reads a positive integer path parameter.
func parseID(ctx *gin.Context, param string) (int64, *response.Err) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("%s: %w", param, errInvalidID))
	}

	return id, nil
}

// serviceErr maps a service error to its response. op names the failing
// call for the log line of a 500.
func serviceErr(op string, err error, key string, value any) *response.Err {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return response.ErrBadRequest(vErr.Err)
	case errors.Is(err, service.ErrElectionNotFound):
		return response.ErrNotFound("election", key, value)
	case errors.Is(err, service.ErrCandidateNotFound):
		return response.ErrNotFound("candidate", key, value)
	case errors.Is(err, service.ErrVoterNotFound):
		return response.ErrNotFound("voter", key, value)
	case errors.Is(err, service.ErrVoteNotFound):
		return response.ErrNotFound("vote", key, value)
	case errors.Is(err, service.ErrAlreadyVoted):
		return response.ErrConflict(service.ErrAlreadyVoted)
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
	}
}
