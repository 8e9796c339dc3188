package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/crewup/crewup-api/internal/auth"
	"github.com/crewup/crewup-api/internal/config"
	v1 "github.com/crewup/crewup-api/internal/handlers/v1"
	"github.com/crewup/crewup-api/internal/service"
	"github.com/crewup/crewup-api/internal/store"
	"github.com/crewup/crewup-api/pkg/metrics"
	"github.com/crewup/crewup-api/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg            *config.Config
	store          store.Store
	listener       net.Listener
	jobService     *service.JobService
	appService     *service.ApplicationService
	profileService *service.ProfileService
}

// New returns a new instance of the marketplace API server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	jobService *service.JobService,
	applicationService *service.ApplicationService,
	profileService *service.ProfileService,
) *Server {
	return &Server{
		cfg:            cfg,
		store:          store,
		listener:       listener,
		jobService:     jobService,
		appService:     applicationService,
		profileService: profileService,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	authenticator, err := auth.NewAuthenticator(s.cfg.Service.Auth)
	if err != nil {
		return fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.CorsOrigins,
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		authenticator.Authenticator,
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	handler := v1.NewHandler(s.jobService, s.appService, s.profileService)
	handler.Routes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
