package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateElectionRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (req *CreateElectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
}

type CreateCandidateRequest struct {
	FullName       string `json:"full_name"`
	PartyName      string `json:"party_name"`
	ConstituencyID int64  `json:"constituency_id"`
	ElectionID     int64  `json:"election_id"`
	// Symbol is the base64 encoded image.
	Symbol  string `json:"symbol"`
	VoterID *int64 `json:"voter_id,omitempty"`
}

func (req *CreateCandidateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FullName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.PartyName, validation.Required, validation.RuneLength(1, 255)),
		validation.Field(&req.ConstituencyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.ElectionID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Symbol, is.Base64),
	)
}

type CastVoteRequest struct {
	CandidateID int64 `json:"candidate_id"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CandidateID, validation.Required, validation.Min(int64(1))),
	)
}
