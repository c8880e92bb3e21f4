package api

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/config"
	"document-converter/internal/converter"
	"document-converter/internal/storage"
	"document-converter/internal/util"
)

// Service information
const (
	ServiceName    = "document-converter"
	ServiceVersion = "1.0.0"
)

// Server represents the API server
type Server struct {
	formatDetector *util.FormatDetector
	converterMgr   *converter.ConverterManager
	store          storage.Store
	cfg            config.ServerConfig
	logger         logrus.FieldLogger
}

// NewServer creates a new API server. store may be nil, in which case
// results can only be streamed back.
func NewServer(converterMgr *converter.ConverterManager, store storage.Store, cfg config.ServerConfig, logger logrus.FieldLogger) *Server {
	return &Server{
		formatDetector: util.NewFormatDetector(),
		converterMgr:   converterMgr,
		store:          store,
		cfg:            cfg,
		logger:         logger,
	}
}

// Handler returns the router wrapped in CORS, logging and panic recovery
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, apperr.New(apperr.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
	})

	// Register service discovery endpoints
	r.HandleFunc("/health", s.HealthCheckHandler).Methods(http.MethodGet)
	r.HandleFunc("/service-info", s.ServiceInfoHandler).Methods(http.MethodGet)

	// Register API endpoints
	r.HandleFunc("/api/conversions", s.ListConversionsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/detect", s.DetectFormatHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/convert", s.ConvertToPDFHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/convert/{kind}", s.ConvertHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/files/{key}", s.DownloadHandler).Methods(http.MethodGet)

	r.Use(requestLogger(s.logger), recoverer(s.logger))

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Disposition", requestIDHeader},
	})
	return c.Handler(r)
}

// StartServer runs the HTTP server until ctx is cancelled
func StartServer(ctx context.Context, cfg *config.Config, converterMgr *converter.ConverterManager, store storage.Store, logger logrus.FieldLogger) error {
	server := NewServer(converterMgr, store, cfg.Server, logger)

	// Create the HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // Allow for longer conversion times
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", httpServer.Addr).Info("Starting document-converter API server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// HealthCheckHandler returns the health status of the service
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ServiceInfoHandler returns information about this service for service discovery
func (s *Server) ServiceInfoHandler(w http.ResponseWriter, r *http.Request) {
	hostname, _ := os.Hostname()

	storageBackend := config.StorageNone
	if s.store != nil {
		storageBackend = s.store.Backend()
	}

	info := map[string]interface{}{
		"service":  ServiceName,
		"version":  ServiceVersion,
		"hostname": hostname,
		"storage":  storageBackend,
		"endpoints": []string{
			"/api/conversions",
			"/api/detect",
			"/api/convert",
			"/api/convert/{kind}",
			"/api/files/{key}",
		},
	}
	writeJSON(w, http.StatusOK, info)
}
