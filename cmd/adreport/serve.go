package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aerissecure/adreport"
	"github.com/aerissecure/adreport/internal/config"
	"github.com/aerissecure/adreport/internal/server"
	"github.com/aerissecure/adreport/internal/store"
)

var serveFlags struct {
	httpAddr  string
	dataDir   string
	maxUpload int64
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload/filter/download web service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.httpAddr, "http-addr", "", "HTTP listen address (default $ADREPORT_HTTP_ADDR or localhost:8080)")
	serveCmd.Flags().StringVar(&serveFlags.dataDir, "data-dir", "", "Directory for stored workbooks (default $ADREPORT_DATA_DIR or the system temp dir)")
	serveCmd.Flags().Int64Var(&serveFlags.maxUpload, "max-upload-bytes", 0, "Upload size limit (default $ADREPORT_MAX_UPLOAD_BYTES or 32 MiB)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveFlags.httpAddr != "" {
		cfg.HTTPAddr = serveFlags.httpAddr
	}
	if serveFlags.dataDir != "" {
		cfg.DataDir = serveFlags.dataDir
	}
	if serveFlags.maxUpload > 0 {
		cfg.MaxUploadBytes = serveFlags.maxUpload
	}
	gin.SetMode(cfg.GinMode)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return err
	}
	tr := adreport.NewTransformer()
	srv, err := server.NewServer(server.Config{
		HTTPAddr:       cfg.HTTPAddr,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Store:          st,
		Transformer:    &tr,
	})
	if err != nil {
		return errors.Wrap(err, "init server")
	}
	log.WithFields(log.Fields{"dataDir": st.Root(), "maxUploadBytes": cfg.MaxUploadBytes}).Info("Starting report server.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}
