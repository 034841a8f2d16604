package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/useradmin/internal/buildinfo"
	"github.com/dmitrijs2005/useradmin/internal/client/cli"
	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "useradmin:", err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, db, err := session.Open(ctx, cfg.DataDir, log)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer db.Close()

	apiClient, err := client.NewHTTPClient(cfg.APIBaseURL, sess,
		client.WithLogger(log),
		client.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return err
	}

	app := cli.NewApp(cfg, cli.Deps{
		Auth:    services.NewAuthService(apiClient, sess, log),
		Users:   services.NewUserService(apiClient),
		Session: sess,
		Logger:  log,
	})
	app.Run(ctx)
	return nil
}
