package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/config"
	"github.com/campuschain/ccms/internal/infra/database"
	"github.com/campuschain/ccms/internal/infra/ledger"
	"github.com/campuschain/ccms/internal/infra/repository"
	"github.com/campuschain/ccms/internal/infra/tracing"
	"github.com/campuschain/ccms/internal/present/rest"
	"github.com/campuschain/ccms/internal/present/rest/middleware"
	"github.com/campuschain/ccms/internal/service"
	"github.com/campuschain/ccms/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logLevel := slog.LevelDebug
	if cfg.Server.Production {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	if cfg.Server.EnableTrace {
		shutdown, err := tracing.Init("ccms", cfg.Server.TraceEndpoint)
		if err != nil {
			slog.Error("Failed to init tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	db, err := database.NewPostgres(cfg.Server.PostgresDsn)
	if err != nil {
		slog.Error("Failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("Failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(cfg.Server.RedisAddr, "", cfg.Server.RedisDB)
	mc := database.NewMemcached(cfg.Server.MemcachedAddr)

	gateway, err := ledger.NewGateway(cfg.Ledger)
	if err != nil {
		slog.Error("Failed to construct ledger gateway", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authService := service.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL.Std(), cfg.Auth.RefreshTTL.Std())
	sentimentService := service.NewSentimentService()
	reputationService := service.NewReputationService(gateway, cfg.Ledger.ReputationAppID)
	rewardService := service.NewRewardService(gateway, cfg.Ledger.RewardAssetID)
	signalService := service.NewSignalService(rdb)

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	certificateRepo := repository.NewCertificateRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	electionRepo := repository.NewElectionRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	salt := cfg.Privacy.HashSalt
	if salt == "" {
		salt = ccms.DefaultSalt
	}

	userUsecase := usecase.NewUserUsecase(userRepo)
	eventUsecase := usecase.NewEventUsecase(eventRepo, attendanceRepo, gateway)
	attendanceUsecase := usecase.NewAttendanceUsecase(eventRepo, attendanceRepo, gateway,
		signalService, reputationService, rewardService, salt)
	certificateUsecase := usecase.NewCertificateUsecase(eventRepo, certificateRepo, attendanceRepo,
		gateway, reputationService, rewardService, int64(cfg.Certificates.AttendanceThreshold), salt)
	feedbackUsecase := usecase.NewFeedbackUsecase(eventRepo, feedbackRepo, sentimentService,
		reputationService, rewardService, salt)
	votingUsecase := usecase.NewVotingUsecase(electionRepo, voteRepo, userRepo,
		gateway, reputationService, rewardService)
	reputationUsecase := usecase.NewReputationUsecase(reputationService, rewardService)

	explorer := ccms.Explorer{Base: cfg.Ledger.ExplorerBase}

	handler := rest.NewHandler(
		db, gateway,
		userUsecase, eventUsecase, attendanceUsecase, certificateUsecase,
		feedbackUsecase, votingUsecase, reputationUsecase,
		authService, signalService, mc, explorer,
		cfg.Server.Production,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware("ccms"))
	}
	e.Use(middleware.NewRateLimiter(rdb, cfg.RateLimit.Window.Std(), int64(cfg.RateLimit.Max)).Limit)

	handler.RegisterRoutes(e, middleware.NewAuthMiddleware(authService))

	go func() {
		if err := e.Start(cfg.Server.Listen); err != nil {
			slog.Info("Server stopped", slog.String("reason", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", slog.String("error", err.Error()))
	}
}
