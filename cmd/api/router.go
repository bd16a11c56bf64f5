package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/docs"
	"library-catalog/internal/shared/middleware"
	"library-catalog/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)
	if c.Config.HTTP.HTTPSRedirect {
		router.Use(middleware.HTTPSRedirect(c.Config.HTTP.HTTPSPort))
	}

	docs.Register(router, c.Config.App.Version)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Reads are public; writes need a bearer token when auth is enabled.
		writes := []gin.HandlerFunc{}
		if c.Config.JWT.Enabled {
			writes = append(writes, middleware.Auth(c.JWTManager))
		}

		setupAuthorRoutes(v1, c, writes)
		setupBookRoutes(v1, c, writes)
	}

	return router
}

func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container, writes []gin.HandlerFunc) {
	authors := v1.Group("/authors")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.GetByID)
		authors.GET("/:id/books", c.AuthorHandler.ListBooks)

		authors.POST("", with(writes, c.AuthorHandler.Create)...)
		authors.PUT("/:id", with(writes, c.AuthorHandler.Update)...)
		authors.DELETE("/:id", with(writes, c.AuthorHandler.Delete)...)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, writes []gin.HandlerFunc) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/:id", c.BookHandler.GetByID)
		books.GET("/:id/authors", c.BookHandler.ListAuthors)

		books.POST("", with(writes, c.BookHandler.Create)...)
		books.PUT("/:id", with(writes, c.BookHandler.Update)...)
		books.DELETE("/:id", with(writes, c.BookHandler.Delete)...)
		books.PUT("/:id/authors/:authorId", with(writes, c.BookHandler.LinkAuthor)...)
		books.DELETE("/:id/authors/:authorId", with(writes, c.BookHandler.UnlinkAuthor)...)
	}
}

func with(chain []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		var serverVersion string
		if appCtx.DB == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			} else if v, err := appCtx.DB.ServerVersion(ctx); err == nil {
				serverVersion = v
			}
		}

		// Check redis
		redisStatus := "disabled"
		if appCtx.CacheEnabled() {
			redisStatus = "ok"
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		database := gin.H{"status": dbStatus}
		if appCtx.DB != nil {
			database["dialect"] = appCtx.DB.Dialect
			database["server_version"] = serverVersion
			database["pool"] = appCtx.DB.Stats()
		}

		health["services"] = gin.H{
			"database": database,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
