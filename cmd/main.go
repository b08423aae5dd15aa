// Package main wires the dashboard API server and the background poller.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/PolymerLabs/project-health-sub001/config"
	"github.com/PolymerLabs/project-health-sub001/internal/api"
	"github.com/PolymerLabs/project-health-sub001/internal/fetcher"
	"github.com/PolymerLabs/project-health-sub001/internal/github"
	"github.com/PolymerLabs/project-health-sub001/internal/notify"
	"github.com/PolymerLabs/project-health-sub001/internal/poller"
	"github.com/PolymerLabs/project-health-sub001/internal/repository"
	"github.com/PolymerLabs/project-health-sub001/internal/transport/http/middleware"
	"github.com/PolymerLabs/project-health-sub001/internal/transport/http/server/handlers-fiber"
	"github.com/PolymerLabs/project-health-sub001/internal/updates"
	"github.com/PolymerLabs/project-health-sub001/internal/usecase"
	"github.com/PolymerLabs/project-health-sub001/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	tracker := updates.NewTracker()

	source := github.NewClient(log, github.Config{
		Endpoint:       cfg.GitHub.Endpoint,
		Token:          cfg.GitHub.Token,
		PageSize:       cfg.GitHub.PageSize,
		RequestTimeout: cfg.GitHub.RequestTimeout,
	})
	dash := poller.NewDashData(fetcher.New(log, source))

	sender := notify.New(log, repo, notify.Config{
		VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
		Subject:         cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	})

	p := poller.New(log, dash, repo, tracker, sender, poller.Config{
		LongInterval:      cfg.Poller.LongInterval,
		ShortInterval:     cfg.Poller.ShortInterval,
		SuppressionWindow: cfg.Poller.SuppressionWindow,
	})
	go func() {
		if err := p.Run(ctx); err != nil && ctx.Err() == nil {
			log.Errorw("poller stopped", "error", err)
		}
	}()

	uc := usecase.New(log, ctx, repo, dash, p, tracker, cfg.HTTP.RequestTimeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	h := handlers_fiber.NewHandler(log, uc)
	api.RegisterHandlers(serv, h)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = serv.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout)
	}
}
