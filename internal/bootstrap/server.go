package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Domenick1991/goaholidays/api"
	"github.com/Domenick1991/goaholidays/config"
	"github.com/Domenick1991/goaholidays/internal/metrics"
	"github.com/Domenick1991/goaholidays/internal/service/booking"
	"github.com/Domenick1991/goaholidays/internal/service/enquiry"
	"github.com/Domenick1991/goaholidays/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const swaggerFile = "swagger.json"

type Services struct {
	Bookings  booking.BookingUseCase
	Enquiries enquiry.EnquiryUseCase
	Store     storage.Readiness
	Metrics   *metrics.Metrics
}

// Run serves router on cfg.HTTP and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, router http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address(),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadHeaderTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires the REST API, docs, metrics and, in production, the compiled frontend.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	if cfg.HTTP.Mode == config.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors.Default())
	if svc.Metrics != nil {
		r.Use(svc.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(svc.Metrics.Handler()))
	}

	apiGroup := r.Group("/api")
	api.NewHealthHandler(svc.Store).Register(apiGroup)
	api.NewPackageHandler().Register(apiGroup)

	gate := api.RequireStore(svc.Store)
	api.NewBookingHandler(svc.Bookings).Register(apiGroup.Group("/bookings", gate))
	api.NewEnquiryHandler(svc.Enquiries).Register(apiGroup.Group("/enquiries", gate))

	if cfg.HTTP.SwaggerDir != "" {
		r.Static("/swagger", cfg.HTTP.SwaggerDir)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerFile))))
	}

	r.NoRoute(noRoute(cfg.HTTP))
	return r
}

// noRoute answers unknown API paths with JSON and, when the frontend is served,
// falls back to index.html so client-side routes resolve.
func noRoute(cfg config.HTTPConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/") || !cfg.ServeFrontend() || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		file := filepath.Join(cfg.StaticDir, filepath.Clean("/"+path))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		c.File(filepath.Join(cfg.StaticDir, "index.html"))
	}
}
