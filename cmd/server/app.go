package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/rmachado/library-api/internal/config"
	"github.com/rmachado/library-api/internal/notify"
	"github.com/rmachado/library-api/internal/platform/postgres"
	"github.com/rmachado/library-api/internal/service"
	"github.com/rmachado/library-api/internal/service/auth"
	"github.com/rmachado/library-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	redisClient *redis.Client
	amqpConn    *amqp.Connection
	amqpChannel *amqp.Channel

	authorStore store.AuthorStore
	bookStore   store.BookStore
	loanStore   store.LoanStore
	userStore   store.UserStore

	jwtService auth.JWTService
	denylist   auth.TokenDenylist

	authorService service.AuthorService
	bookService   service.BookService
	loanService   service.LoanService
	userService   service.UserService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := app.redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.denylist = auth.NewRedisDenylist(app.redisClient)
	logger.Info("token denylist connected", "addr", cfg.Redis.Addr)

	notifier, err := app.setupNotifier(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	app.authorStore = postgres.NewPostgresAuthorStore(db, logger)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)
	app.loanStore = postgres.NewPostgresLoanStore(db, logger)
	app.userStore = postgres.NewPostgresUserStore(db, logger)

	app.authorService = service.NewAuthorService(app.authorStore, db, logger)
	app.bookService = service.NewBookService(app.bookStore, db, logger)
	app.loanService = service.NewLoanService(app.loanStore, notifier, db, logger)
	app.userService = service.NewUserService(
		app.userStore,
		app.jwtService,
		auth.NewBcryptHasher(0),
		auth.NewBcryptVerifier(),
		app.denylist,
		db,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupNotifier connects to the broker, declares the loan queue and returns
// the notifier the loan service publishes through.
func (app *application) setupNotifier(cfg config.AMQPConfig) (notify.Notifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	app.amqpConn = conn

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open broker channel: %w", err)
	}
	app.amqpChannel = channel

	if err := notify.DeclareLoanQueue(channel); err != nil {
		return nil, fmt.Errorf("failed to declare loan queue: %w", err)
	}

	app.logger.Info("loan notification queue declared", "queue", notify.LoanQueueName)
	return notify.NewAMQPNotifier(channel, notify.LoanQueueName, app.logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources. The database
// connection is closed by the caller that opened it.
func (app *application) cleanup() {
	if app.amqpChannel != nil {
		if err := app.amqpChannel.Close(); err != nil {
			app.logger.Error("error closing broker channel", "error", err)
		}
	}
	if app.amqpConn != nil {
		if err := app.amqpConn.Close(); err != nil {
			app.logger.Error("error closing broker connection", "error", err)
		}
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
