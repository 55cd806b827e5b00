// Package server exposes the report transform over HTTP: upload an export,
// download the report, filter it by weekday.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/aerissecure/adreport"
	"github.com/aerissecure/adreport/internal/logging"
	"github.com/aerissecure/adreport/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ProcessedName is the store name of the latest report.
const ProcessedName = "processed_data.xlsx"

const shutdownTimeout = 5 * time.Second

// Config holds server dependencies.
type Config struct {
	HTTPAddr       string
	MaxUploadBytes int64
	Store          *store.Dir
	Transformer    *adreport.Transformer // nil means adreport.NewTransformer()
}

// Server is the report web service.
type Server struct {
	httpAddr   string
	maxUpload  int64
	store      *store.Dir
	tr         adreport.Transformer
	engine     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the gin engine and routes.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	s := &Server{
		httpAddr:  cfg.HTTPAddr,
		maxUpload: cfg.MaxUploadBytes,
		store:     cfg.Store,
		tr:        adreport.NewTransformer(),
	}
	if cfg.Transformer != nil {
		s.tr = *cfg.Transformer
	}

	engine := gin.New()
	engine.Use(logging.RequestID(), logging.Logger(), gin.Recovery())
	engine.SetHTMLTemplate(tmpl)
	if s.maxUpload > 0 {
		engine.MaxMultipartMemory = s.maxUpload
	}

	engine.GET("/", s.index)
	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.POST("/upload", s.upload)
	engine.GET("/download", s.download)
	engine.POST("/filter", s.filter)
	engine.GET("/download-filtered/:filename", s.downloadFiltered)
	s.engine = engine

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.WithField("addr", s.httpAddr).Info("Report server listening.")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve http")
	}
}
