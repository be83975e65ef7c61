package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/repository"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
	"github.com/vietanh2810/evoting-api/internal/testutil"
)

var fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type voteKey struct{ election, voter int64 }

type fakeCache struct {
	mu        sync.Mutex
	voted     map[voteKey]bool
	forgotten []int64
	err       error
}

func newFakeCache() *fakeCache {
	return &fakeCache{voted: map[voteKey]bool{}}
}

func (c *fakeCache) HasVoted(_ context.Context, electionID, voterID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}

	return c.voted[voteKey{electionID, voterID}], nil
}

func (c *fakeCache) MarkVoted(_ context.Context, electionID, voterID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.voted[voteKey{electionID, voterID}] = true

	return nil
}

func (c *fakeCache) Forget(_ context.Context, electionID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forgotten = append(c.forgotten, electionID)
	for k := range c.voted {
		if k.election == electionID {
			delete(c.voted, k)
		}
	}

	return c.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

// stack wires services over a fresh SQLite store the same way the API
// server does.
type stack struct {
	db        *gorm.DB
	cache     *fakeCache
	publisher *fakePublisher
	metrics   *metrics.Metrics

	votes     *VoteService
	ballots   *BallotService
	tallies   *TallyService
	elections *ElectionService
	auth      *AuthService
}

func newStack(t *testing.T, opts ElectionOptions) *stack {
	t.Helper()
	zap.ReplaceGlobals(zap.NewNop())

	gdb := testutil.NewDB(t)
	s := &stack{
		db:        gdb,
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		metrics:   metrics.New(),
	}

	voterRepo := repository.NewVoterRepository(dao.NewVoterDAO(gdb))
	candidateRepo := repository.NewCandidateRepository(dao.NewCandidateDAO(gdb))
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(gdb))

	s.votes = NewVoteService(voteRepo, candidateRepo, s.cache, s.publisher, s.metrics)
	s.ballots = NewBallotService(voterRepo, candidateRepo, voteRepo, s.metrics)
	s.tallies = NewTallyService(repository.NewTallyRepository(dao.NewTallyDAO(gdb)), s.metrics)
	s.elections = NewElectionService(
		repository.NewElectionRepository(dao.NewElectionDAO(gdb)),
		candidateRepo,
		s.cache,
		s.publisher,
		s.metrics,
		opts,
	)
	s.elections.now = func() time.Time { return fixedNow }
	s.auth = NewAuthService(voterRepo, repository.NewAdminRepository(dao.NewAdminDAO(gdb)))

	return s
}

// seedScenario sets up voter 1111111111 in constituency 1 and election 7
// with candidate 101 in constituency 1 and candidate 102 in constituency 2.
func seedScenario(t *testing.T, gdb *gorm.DB) dao.Voter {
	t.Helper()

	testutil.CreateConstituency(t, gdb, 1, "North")
	testutil.CreateConstituency(t, gdb, 2, "South")
	voter := testutil.CreateVoter(t, gdb, "1111111111", 1, "x")
	testutil.CreateElection(t, gdb, 7, "General")
	testutil.CreateCandidate(t, gdb, 101, 7, 1, "Alice")
	testutil.CreateCandidate(t, gdb, 102, 7, 2, "Bob")

	return voter
}
