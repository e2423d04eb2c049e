package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffcore/employee-system/internal/api"
	"github.com/staffcore/employee-system/internal/core/domain"
	"github.com/staffcore/employee-system/internal/core/ports"
	"github.com/staffcore/employee-system/internal/core/service"
	"github.com/staffcore/employee-system/internal/infrastructure/config"
	mongodb "github.com/staffcore/employee-system/internal/infrastructure/db/mongo"
	redisdb "github.com/staffcore/employee-system/internal/infrastructure/db/redis"
	"github.com/staffcore/employee-system/internal/infrastructure/mail"
	"github.com/staffcore/employee-system/internal/infrastructure/queue"
	"github.com/staffcore/employee-system/internal/infrastructure/storage"
	"github.com/staffcore/employee-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Redis ---
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// --- Mail (optional) ---
	var enqueuer ports.MailEnqueuer
	var composer ports.MailComposer
	if cfg.SMTP.Enabled() {
		mailer := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromEmail: cfg.SMTP.FromEmail,
			FromName:  cfg.SMTP.FromName,
		})
		dispatcher := queue.NewMailDispatcher(0, mailer, logger.For("mail-dispatcher"))
		dispatcher.Start(ctx)
		enqueuer = dispatcher
		composer = mail.NewComposer(cfg.ProjectName, cfg.FrontendHost, cfg.ResetTokenHours)
	} else {
		log.Warn().Msg("smtp not configured, email notifications disabled")
	}

	// --- Services ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	cache := redisdb.NewPrincipalCache(redisClient, logger.For("principal-cache"))
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.ResetTokenTTL())
	users := service.NewUserService(userRepo, roleRepo, tokens, enqueuer, composer, cache, logger.For("user-service"))
	roles := service.NewRoleService(roleRepo, userRepo, logger.For("role-service"))
	images := storage.NewLocalImageStore(cfg.Upload.Dir)

	if err := seed(ctx, cfg.Seed, roles, users, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed initial data")
	}

	e := api.NewRouter(api.Dependencies{
		Users:          users,
		Roles:          roles,
		Tokens:         tokens,
		Images:         images,
		AccessTokenTTL: cfg.AccessTokenTTL(),
		Mongo:          db,
		Redis:          redisClient,
		Logger:         log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("server stopped")
}

// seed creates the first role and the owner account on a fresh database so
// the admin-gated API is reachable. Both steps are idempotent.
func seed(ctx context.Context, cfg config.SeedConfig, roles ports.RoleService, users ports.UserService, log zerolog.Logger) error {
	if _, err := roles.GetByName(ctx, cfg.RoleName); errors.Is(err, domain.ErrRoleNotFound) {
		if _, err := roles.Create(ctx, ports.CreateRoleInput{
			Name:        cfg.RoleName,
			Description: "Initial role created at startup",
		}); err != nil {
			return err
		}
		log.Info().Str("role", cfg.RoleName).Msg("seeded first role")
	} else if err != nil {
		return err
	}

	if _, err := users.GetByUsername(ctx, cfg.OwnerUsername); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if cfg.OwnerPassword == "" {
		log.Warn().Msg("FIRST_OWNER_PASSWORD not set, skipping owner seed")
		return nil
	}

	if _, err := users.Create(ctx, ports.CreateUserInput{
		Username:    cfg.OwnerUsername,
		Password:    cfg.OwnerPassword,
		FirstName:   cfg.OwnerFirst,
		LastName:    cfg.OwnerLast,
		Birthday:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		PhoneNumber: cfg.OwnerPhone,
		Email:       cfg.OwnerEmail,
		IsAdmin:     true,
		IsOwner:     true,
		RoleName:    cfg.RoleName,
	}); err != nil {
		return err
	}

	log.Info().Str("username", cfg.OwnerUsername).Msg("seeded owner account")
	return nil
}
