package domain

type Candidate struct {
	ID             int64  `json:"candidate_id"`
	FullName       string `json:"full_name"`
	PartyName      string `json:"party_name"`
	ConstituencyID int64  `json:"constituency_id"`
	ElectionID     int64  `json:"election_id"`
	Symbol         []byte `json:"-"`
	VoterID        *int64 `json:"voter_id,omitempty"`
}

func (c Candidate) HasSymbol() bool {
	return len(c.Symbol) > 0
}
