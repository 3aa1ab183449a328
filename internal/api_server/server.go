package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/qualinet/review-planner/internal/config"
	handlers "github.com/qualinet/review-planner/internal/handlers/v1alpha1"
	"github.com/qualinet/review-planner/internal/service"
	"github.com/qualinet/review-planner/internal/store"
	"github.com/qualinet/review-planner/internal/workflow"
	"github.com/qualinet/review-planner/pkg/metrics"
	"github.com/qualinet/review-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg        *config.Config
	store      store.Store
	listener   net.Listener
	dispatcher service.NotificationDispatcher
}

// New returns a new instance of a review-planner server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	dispatcher service.NotificationDispatcher,
) *Server {
	return &Server{
		cfg:        cfg,
		store:      store,
		listener:   listener,
		dispatcher: dispatcher,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{s.cfg.Service.BaseUrl},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	engine := workflow.NewEngine()
	reviewService := service.NewReviewService(s.store, engine, s.dispatcher)
	documentService := service.NewDocumentService(s.store)

	h := handlers.NewServiceHandler(reviewService, documentService)
	h.RegisterRoutes(router)

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
