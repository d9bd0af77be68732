package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cockpdf/internal/buildinfo"
	"github.com/dmitrijs2005/cockpdf/internal/client/cli"
	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/dmitrijs2005/cockpdf/internal/client/config"
	"github.com/dmitrijs2005/cockpdf/internal/client/services"
	"github.com/dmitrijs2005/cockpdf/internal/client/session"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}
	logger := logging.New(os.Stderr, level)

	sess, err := session.Open(ctx, cfg.SessionDB, logger)
	if err != nil {
		log.Fatalf("error opening session database: %v", err)
	}
	defer sess.Close()

	if err := sess.Restore(ctx, cfg.BaseURL); err != nil {
		logger.Warn(ctx, "failed to restore session", "error", err)
	}

	httpClient := client.NewHTTPClient(cfg.BaseURL,
		client.WithHTTPClient(&http.Client{Jar: sess.Jar()}),
		client.WithLogger(logger),
	)
	api := services.NewAPI(httpClient,
		services.WithTTL(cfg.AuthCacheTTL),
		services.WithLogger(logger),
	)

	app := cli.NewApp(cfg, api, sess, logger)
	app.Run(ctx)

}
