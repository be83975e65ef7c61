package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	v1 "github.com/vietanh2810/evoting-api/internal/api/handler/v1"
	"github.com/vietanh2810/evoting-api/internal/api/middleware"
	"github.com/vietanh2810/evoting-api/internal/cache"
	"github.com/vietanh2810/evoting-api/internal/config"
	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/evoting-api/internal/repository"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
	"github.com/vietanh2810/evoting-api/internal/service"
)

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	Metrics *metrics.Metrics
}

type handlers struct {
	auth      *v1.AuthHandler
	ballot    *v1.BallotHandler
	election  *v1.ElectionHandler
	result    *v1.ResultHandler
	candidate *v1.CandidateHandler
	admin     *v1.AdminHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, votedCache cache.VotedCache, publisher events.Publisher, m *metrics.Metrics) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		Metrics: m,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(db, votedCache, publisher))

	return s
}

func (s *Server) initHandlers(db *gorm.DB, votedCache cache.VotedCache, publisher events.Publisher) handlers {
	voterRepo := repository.NewVoterRepository(dao.NewVoterDAO(db))
	adminRepo := repository.NewAdminRepository(dao.NewAdminDAO(db))
	constituencyRepo := repository.NewConstituencyRepository(dao.NewConstituencyDAO(db))
	electionRepo := repository.NewElectionRepository(dao.NewElectionDAO(db))
	candidateRepo := repository.NewCandidateRepository(dao.NewCandidateDAO(db))
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(db))
	tallyRepo := repository.NewTallyRepository(dao.NewTallyDAO(db))

	authSvc := service.NewAuthService(voterRepo, adminRepo)
	voterSvc := service.NewVoterService(voterRepo, constituencyRepo)
	ballotSvc := service.NewBallotService(voterRepo, candidateRepo, voteRepo, s.Metrics)
	voteSvc := service.NewVoteService(voteRepo, candidateRepo, votedCache, publisher, s.Metrics)
	tallySvc := service.NewTallyService(tallyRepo, s.Metrics)
	electionSvc := service.NewElectionService(
		electionRepo,
		candidateRepo,
		votedCache,
		publisher,
		s.Metrics,
		service.ElectionOptions{RefreshStatusOnRead: s.Config.Election.RefreshStatusOnRead},
	)

	return handlers{
		auth:      v1.NewAuthHandler(s.Config.API, authSvc),
		ballot:    v1.NewBallotHandler(electionSvc, ballotSvc, voteSvc, s.Metrics),
		election:  v1.NewElectionHandler(electionSvc),
		result:    v1.NewResultHandler(electionSvc, tallySvc),
		candidate: v1.NewCandidateHandler(electionSvc),
		admin:     v1.NewAdminHandler(voterSvc, voteSvc, electionSvc),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ZapLogger())
	s.Router.Use(s.Metrics.Middleware())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/voter/login", h.auth.HandleVoterLogin)
		public.POST("/auth/admin/login", h.auth.HandleAdminLogin)
		public.GET("/elections", h.election.HandleListElections)
		public.GET("/elections/:electionID", h.election.HandleGetElection)
		public.GET("/elections/:electionID/results", h.result.HandleGetResults)
		public.GET("/elections/:electionID/results/constituencies/:constituencyID", h.result.HandleGetConstituencyResults)
		public.GET("/candidates/:candidateID/symbol", h.candidate.HandleGetSymbol)
	}

	voters := s.Router.Group(basePath, authenticator.VerifyJWT(), middleware.RequireRole(jwthelper.RoleVoter))
	{
		voters.GET("/elections/:electionID/ballot", h.ballot.HandleGetBallot)
		voters.POST("/elections/:electionID/votes", h.ballot.HandleCastVote)
		voters.GET("/elections/:electionID/votes/me", h.ballot.HandleGetMyVote)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireRole(jwthelper.RoleAdmin))
	{
		admin.POST("/elections", h.election.HandleCreateElection)
		admin.DELETE("/elections/:electionID", h.election.HandleDeleteElection)
		admin.GET("/elections/:electionID/votes", h.admin.HandleListVotes)
		admin.POST("/candidates", h.candidate.HandleCreateCandidate)
		admin.GET("/candidates", h.candidate.HandleListCandidates)
		admin.DELETE("/candidates/:candidateID", h.candidate.HandleDeleteCandidate)
		admin.GET("/voters", h.admin.HandleListVoters)
		admin.GET("/constituencies", h.admin.HandleListConstituencies)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
}
