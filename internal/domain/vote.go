package domain

import "time"

type Vote struct {
	ID          int64     `json:"vote_id"`
	VoterID     int64     `json:"voter_id"`
	CandidateID int64     `json:"candidate_id"`
	ElectionID  int64     `json:"election_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoteRecord is a vote joined with the names an administrator needs to
// audit it.
type VoteRecord struct {
	VoteID        int64  `json:"vote_id"`
	ElectionID    int64  `json:"election_id"`
	VoterID       int64  `json:"voter_id"`
	VoterName     string `json:"voter_name"`
	CandidateID   int64  `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
}

type TallyRow struct {
	CandidateID   int64  `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	TotalVotes    int64  `json:"total_votes"`
}

// Ballot is what a voter may choose from in one election.
type Ballot struct {
	Voter      Voter       `json:"voter"`
	ElectionID int64       `json:"election_id"`
	Candidates []Candidate `json:"candidates"`
	// NoCandidates is set when nothing in the election is open to the
	// voter's constituency. It is not an error.
	NoCandidates bool  `json:"no_candidates"`
	HasVoted     bool  `json:"has_voted"`
	MyVote       *Vote `json:"my_vote,omitempty"`
}

func (b Ballot) Offers(candidateID int64) bool {
	for _, c := range b.Candidates {
		if c.ID == candidateID {
			return true
		}
	}

	return false
}
