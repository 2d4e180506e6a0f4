package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/eurodata/site/app/eurodata"
	"github.com/eurodata/site/core/config"
	"github.com/eurodata/site/core/logger"
	"github.com/eurodata/site/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg eurodata.Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.ForEnv(cfg.Env, cfg.AppName),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithContextExtractors(middleware.RequestIDExtractor, middleware.LocaleExtractor),
	)
	logger.SetAsDefault(log)

	app, err := eurodata.NewApp(eurodata.WithConfig(cfg), eurodata.WithLogger(log))
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		os.Exit(1)
	}

	log.Info("starting", logger.Component("eurodata"), logger.Key("addr", cfg.Server.Addr))
	if err := app.Run(ctx); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}
