package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	authorHandler "library-catalog/internal/domains/author/handler"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"
)

// Container holds the application's dependency graph.
// Everything in it is created once and shared by all requests.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.DB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler

	redis *infraCache.RedisCache
}

// NewContainer builds the graph from environment configuration.
//
// Order matters:
// 1. Config
// 2. Database (+ schema), cache, JWT
// 3. Repositories -> services -> handlers
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("[CONTAINER] initializing")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Open(connectCtx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.EnsureSchema(connectCtx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	log.Info().Msg("[CONTAINER] schema ready")

	c := &Container{Config: cfg, DB: db, Cache: cache.Noop{}}

	if cfg.Redis.Enabled {
		rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Connect(ctx); err != nil {
			// Redis is an optimisation; run without it.
			log.Warn().Err(err).Msg("[CONTAINER] redis unavailable, caching disabled")
			_ = rc.Close()
		} else {
			c.redis = rc
			c.Cache = rc
		}
	}

	c.wire()

	log.Info().
		Str("dialect", string(db.Dialect)).
		Bool("cache", c.redis != nil).
		Bool("auth", cfg.JWT.Enabled).
		Msg("[CONTAINER] initialized")
	return c, nil
}

// New builds a container around existing infrastructure. Used by tests.
func New(cfg *config.Config, db *database.DB, c cache.Cache) *Container {
	if c == nil {
		c = cache.Noop{}
	}
	ct := &Container{Config: cfg, DB: db, Cache: c}
	ct.wire()
	return ct
}

func (c *Container) wire() {
	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		c.Config.App.Name,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewRepository(c.DB, c.Cache, c.Config.Redis.CacheTTL)
	c.BookRepo = bookRepo.NewRepository(c.DB, c.Cache, c.Config.Redis.CacheTTL)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
}

// CacheEnabled reports whether Redis is in use.
func (c *Container) CacheEnabled() bool {
	_, noop := c.Cache.(cache.Noop)
	return !noop
}

// Cleanup closes the database and Redis connections.
func (c *Container) Cleanup() {
	log.Info().Msg("[CONTAINER] cleaning up")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] failed to close database")
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[CONTAINER] failed to close redis")
		}
	}
}
