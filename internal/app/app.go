// Package app wires the HTTP surface of the gateway: routing, middleware,
// and the handlers that translate between HTTP and the completion core.
package app

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"makala-gateway/internal/llm"
)

// App bundles the router with the completion service it dispatches to.
type App struct {
	Router  *gin.Engine
	service *llm.Service
}

// New assembles the router. API routes sit behind the per-IP rate limiter;
// request-id and logging middleware apply everywhere. When a static
// directory is configured, unmatched GET routes fall back to it so a
// single-page frontend can be served alongside the API.
func New(cfg *llm.Config, svc *llm.Service) *App {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logging())

	a := &App{Router: router, service: svc}

	api := router.Group("/api")
	api.Use(RateLimit(cfg.RateLimitRPM))
	api.POST("/chat", a.handleChat)
	api.POST("/title", a.handleTitle)

	router.GET("/health", a.handleHealth)

	if cfg.StaticDir != "" {
		registerStatic(router, cfg.StaticDir)
	}

	return a
}

// registerStatic serves files from dir for routes the API does not claim,
// with index.html as the fallback for client-side routing.
func registerStatic(router *gin.Engine, dir string) {
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
