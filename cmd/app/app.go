package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/evoting-api/internal/api"
	"github.com/vietanh2810/evoting-api/internal/cache"
	"github.com/vietanh2810/evoting-api/internal/config"
	"github.com/vietanh2810/evoting-api/internal/db"
	"github.com/vietanh2810/evoting-api/internal/events"
	"github.com/vietanh2810/evoting-api/internal/logger"
	"github.com/vietanh2810/evoting-api/internal/metrics"
	"github.com/vietanh2810/evoting-api/internal/repository/dao"
	"github.com/vietanh2810/evoting-api/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(conf, os.Getenv("DATABASE_URL"))
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(gdb); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	if err = seed(ctx, gdb, conf.Seed); err != nil {
		return fmt.Errorf("failed to seed database -> %w", err)
	}

	votedCache, closeCache, err := newVotedCache(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}
	defer func() {
		if err := closeCache(); err != nil {
			zap.L().Warn("failed to close redis client", zap.Error(err))
		}
	}()

	publisher := newPublisher(conf.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("failed to close event publisher", zap.Error(err))
		}
	}()

	s := api.NewServer(conf, gdb, votedCache, publisher, metrics.New())

	srv := &http.Server{
		Addr:    ":" + s.Config.API.Port,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.API.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}

// newVotedCache also returns the func that releases the cache's
// connections on shutdown.
func newVotedCache(ctx context.Context, conf *config.RedisConfig) (cache.VotedCache, func() error, error) {
	if conf == nil || !conf.Enabled {
		zap.L().Info("redis disabled, voted cache off")
		return cache.NopVotedCache{}, func() error { return nil }, nil
	}

	client, err := cache.NewRedisClient(ctx, conf)
	if err != nil {
		return nil, nil, err
	}

	return cache.NewRedisVotedCache(client, conf.TTL), client.Close, nil
}

func newPublisher(conf *config.KafkaConfig) events.Publisher {
	if conf == nil || !conf.Enabled {
		zap.L().Info("kafka disabled, events are dropped")
		return events.NopPublisher{}
	}

	return events.NewKafkaPublisher(conf)
}

func seed(ctx context.Context, gdb *gorm.DB, conf *config.SeedConfig) error {
	if conf == nil || !conf.Enabled {
		return nil
	}

	data, err := seedData(conf)
	if err != nil {
		return err
	}

	return dao.Seed(ctx, gdb, data)
}

// seedData hashes the configured passwords. Entries without a login name
// are skipped.
func seedData(conf *config.SeedConfig) (dao.SeedData, error) {
	data := dao.SeedData{
		Constituencies: conf.Constituencies,
	}

	if conf.Admin.Username != "" {
		hash, err := service.HashPassword(conf.Admin.Password)
		if err != nil {
			return dao.SeedData{}, fmt.Errorf("seed admin -> %w", err)
		}
		data.Admins = append(data.Admins, dao.Admin{
			Username: conf.Admin.Username,
			FullName: conf.Admin.FullName,
			Password: hash,
		})
	}

	if conf.Voter.NID != "" {
		hash, err := service.HashPassword(conf.Voter.Password)
		if err != nil {
			return dao.SeedData{}, fmt.Errorf("seed voter -> %w", err)
		}
		data.Voters = append(data.Voters, dao.Voter{
			FullName:       conf.Voter.FullName,
			NIDNumber:      conf.Voter.NID,
			DateOfBirth:    conf.Voter.DateOfBirth,
			Gender:         conf.Voter.Gender,
			ConstituencyID: conf.Voter.ConstituencyID,
			Password:       hash,
		})
	}

	return data, nil
}
