package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m-mizutani/gitdbfs/pkg/domain/interfaces"
	"github.com/m-mizutani/gitdbfs/pkg/utils/async"
)

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
	repository    string
	jobTimeout    time.Duration
	dispatcher    *async.Dispatcher
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the webhook secret
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithRepository sets the repository shown by the health endpoint
func WithRepository(repository string) Option {
	return func(c *config) {
		c.repository = repository
	}
}

// WithJobTimeout bounds a sync job started by a webhook
func WithJobTimeout(d time.Duration) Option {
	return func(c *config) {
		c.jobTimeout = d
	}
}

// WithDispatcher makes the webhook handler acknowledge pushes immediately
// and run the sync job through d
func WithDispatcher(d *async.Dispatcher) Option {
	return func(c *config) {
		c.dispatcher = d
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	syncUC interfaces.SyncUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:       "localhost:8080",
		jobTimeout: 5 * time.Minute,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth(cfg.repository))

	// Webhook endpoint
	webhookHandler := NewWebhookHandler(cfg.webhookSecret, syncUC,
		WithHandlerJobTimeout(cfg.jobTimeout),
		WithHandlerDispatcher(cfg.dispatcher),
	)
	router.Post("/hooks/github/push", webhookHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
