package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-registry-api/config"
	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/services"
	"user-registry-api/internal/application/validation"
	domainRole "user-registry-api/internal/domain/role"
	"user-registry-api/internal/infrastructure/db/postgres"
	"user-registry-api/internal/infrastructure/db/postgres/role"
	"user-registry-api/internal/infrastructure/db/postgres/user"
	"user-registry-api/internal/infrastructure/hasher"
	"user-registry-api/internal/infrastructure/jwt"
	"user-registry-api/internal/infrastructure/mail"
	"user-registry-api/internal/infrastructure/metrics"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/interface/api/rest"
	"user-registry-api/internal/interface/api/rest/middleware"
	"user-registry-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	envErr := godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	switch {
	case envErr == nil:
	case errors.Is(envErr, fs.ErrNotExist):
		logger.Info("no .env file, using process environment")
	default:
		logger.Fatal("error loading .env file", zap.Error(envErr))
	}
	if cfg.App.JWTSecret == "" {
		logger.Fatal("SERVICE_JWT_SECRET is required")
	}

	// metrics
	mCounter := metrics.NewCounter(prometheus.DefaultRegisterer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))
	r.Use(middleware.Locale(cfg.App.Locale))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	if cfg.DB.Migrate {
		migrateDsn, err := cfg.MigrateDSN()
		if err != nil {
			logger.Fatal("DB migrate config error", zap.Error(err))
		}
		if err = postgres.Migrate(logger, migrateDsn); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// rmqConsumer delivers the queued mails
	rmqConsumer := rmqconsumer.New(
		cfg.MQ,
		logger,
		mail.NewTrainerNotifier(newMailSender(cfg, logger), logger, mCounter),
		mq.RoutingKeys...,
	)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", "development", "local":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

// newMailSender falls back to logging the mails when no SMTP host is configured.
func newMailSender(cfg config.Config, logger *zap.Logger) mail.Sender {
	addr := cfg.SMTPAddr()
	if addr == "" {
		logger.Warn("SMTP_HOST is empty, mails will only be logged")
		return mail.NewLogSender(logger)
	}

	return mail.NewSMTPSender(cfg.Mail, addr)
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	// errgroup ties the http server and both mq workers to one context
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mqConsumer.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers(ctx context.Context) {
	// repos
	userRepo := user.NewRepository(a.db)
	roleRepo := role.NewRepository(a.db)

	// services
	bcrypt, err := hasher.NewBcrypt(a.cfg.App.BcryptCost)
	if err != nil {
		a.logger.Fatal("bcrypt config error", zap.Error(err))
	}
	jwtService := jwt.New(a.cfg.App.JWTSecret, a.cfg.App.JWTTTL)
	v := validation.New(userRepo, roleRepo)
	groups := a.roleGroups(ctx, roleRepo)

	authService := services.NewAuthService(userRepo, v, bcrypt, jwtService, a.mCounter)
	userService := services.NewUserService(userRepo, v, bcrypt, groups, a.mCounter)
	notifier := services.NewNotificationService(userRepo, v, a.mq, a.logger, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewUserController(a.router, userService, a.logger, jwtService)
	rest.NewNotificationController(a.router, notifier, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, a.healthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

// roleGroups converts the configured groups and warns about ids with no
// matching role row. Such groups still resolve, they just match nobody.
func (a *App) roleGroups(ctx context.Context, roles domainRole.Repository) map[string][]domainRole.ID {
	groups := make(map[string][]domainRole.ID, len(a.cfg.RoleGroups))
	for _, name := range a.cfg.RoleGroups.Names() {
		for _, raw := range a.cfg.RoleGroups[name] {
			id := domainRole.ID(raw)
			groups[name] = append(groups[name], id)

			ok, err := roles.Exists(ctx, id)
			if err != nil {
				a.logger.Warn("role group check failed", zap.String("group", name), zap.Error(err))
				continue
			}
			if !ok {
				a.logger.Warn("role group references unknown role",
					zap.String("group", name),
					zap.Int64("role_id", raw),
				)
			}
		}
	}

	return groups
}

func (a *App) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Warn("health check: db ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *App) Logger() *zap.Logger { return a.logger }
