package app

import (
	"context"
	"fmt"

	"github.com/upb/eventflow/auth"
	"github.com/upb/eventflow/config"
	"github.com/upb/eventflow/handlers"
	"github.com/upb/eventflow/middleware"
	"github.com/upb/eventflow/repositories"
	"github.com/upb/eventflow/repositories/postgres"
	"github.com/upb/eventflow/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users         repositories.UserRepository
	Events        repositories.EventRepository
	Venues        repositories.VenueRepository
	Registrations repositories.RegistrationRepository
	TxManager     repositories.TransactionManager

	// Services
	AuthService         *services.AuthService
	UserService         *services.UserService
	EventService        *services.EventService
	VenueService        *services.VenueService
	RegistrationService *services.RegistrationService

	// Auth
	Tokens *auth.TokenCodec
	Gate   *middleware.AuthGate

	Handlers Handlers
}

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UserHandler
	Events        *handlers.EventHandler
	Venues        *handlers.VenueHandler
	Registrations *handlers.RegistrationHandler
	Organizer     *handlers.OrganizerHandler
}

// NewDependencies opens the database described by cfg and wires everything on top of it
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	factory, err := postgres.NewRepositoryFactory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps, err := NewDependenciesWithFactory(ctx, cfg, factory, logger)
	if err != nil {
		_ = factory.Close()
		return nil, err
	}
	return deps, nil
}

// NewDependenciesWithFactory wires the application over an existing repository factory
func NewDependenciesWithFactory(ctx context.Context, cfg *config.Config, factory *postgres.RepositoryFactory, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:      cfg,
		Logger:      logger,
		RepoFactory: factory,
		DB:          factory.GetDB(),
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()

	if err := deps.initAuth(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.initServices(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase verifies the connection and creates the schema when enabled
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if cfg.Database.InitSchema {
		if err := d.RepoFactory.InitSchema(ctx); err != nil {
			return err
		}
		d.Logger.Info("database schema initialized")
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Events = repos.Events
	d.Venues = repos.Venues
	d.Registrations = repos.Registrations
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initAuth builds the token codec and the request gate
func (d *Dependencies) initAuth(cfg *config.Config) error {
	if cfg.Auth.UsingDefaultSecret() {
		msg := "JWT_SECRET not set, signing tokens with the built-in development secret"
		if cfg.IsProduction() {
			d.Logger.Error(msg)
		} else {
			d.Logger.Warn(msg)
		}
	}

	codec, err := auth.NewTokenCodec([]byte(cfg.Auth.JWTSecret))
	if err != nil {
		return err
	}

	d.Tokens = codec
	d.Gate = middleware.NewAuthGate(codec, auth.NewRouteClassifier(), auth.NewAccessPolicy(), d.Logger)
	return nil
}

func (d *Dependencies) initServices(cfg *config.Config) {
	d.AuthService = services.NewAuthService(d.Users, d.Tokens, cfg.Auth.BcryptCost, d.Logger)
	d.UserService = services.NewUserService(d.Users, d.Logger)
	d.EventService = services.NewEventService(d.Events, d.Venues, d.TxManager, d.Logger)
	d.VenueService = services.NewVenueService(d.Venues, d.Logger)
	d.RegistrationService = services.NewRegistrationService(d.Registrations, d.Events, d.TxManager, d.Logger)
}

func (d *Dependencies) initHandlers() {
	d.Handlers = Handlers{
		Health:        handlers.NewHealthHandler(d.DB, d.Logger),
		Auth:          handlers.NewAuthHandler(d.AuthService, d.Logger),
		Users:         handlers.NewUserHandler(d.UserService, d.Logger),
		Events:        handlers.NewEventHandler(d.EventService, d.Logger),
		Venues:        handlers.NewVenueHandler(d.VenueService, d.Logger),
		Registrations: handlers.NewRegistrationHandler(d.RegistrationService, d.Logger),
		Organizer:     handlers.NewOrganizerHandler(d.EventService, d.RegistrationService, d.Logger),
	}
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
		d.RepoFactory = nil
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
