package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/airservice/api"
	"github.com/Domenick1991/airservice/config"
	"github.com/Domenick1991/airservice/internal/metrics"
	"github.com/Domenick1991/airservice/internal/service/auth"
	"github.com/Domenick1991/airservice/internal/service/flights"
	"github.com/Domenick1991/airservice/internal/service/orders"
	"github.com/Domenick1991/airservice/internal/service/reference"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Auth      auth.AuthUseCase
	Orders    orders.OrderUseCase
	Flights   flights.FlightUseCase
	Reference reference.ReferenceUseCase
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker func(ctx context.Context) error

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, svc Services, health HealthChecker) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(log, svc, health),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSeconds)*time.Second)
		defer cancel()
		log.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(log *zap.Logger, svc Services, health HealthChecker) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log), metrics.GinMiddleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authenticate := api.Authenticate(svc.Auth)
	staffOnly := api.RequireStaff()

	users := router.Group("/api/user")
	api.NewUserHandler(svc.Auth).Register(users, users.Group("", authenticate))

	air := router.Group("/api/air", authenticate)
	airStaff := air.Group("", staffOnly)

	api.NewOrderHandler(svc.Orders).Register(air.Group("/orders"))
	api.NewFlightHandler(svc.Flights).Register(air.Group("/flights"), airStaff.Group("/flights"))
	api.NewReferenceHandler(svc.Reference).Register(air, airStaff)

	return router
}
