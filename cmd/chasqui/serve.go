package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/chasquibot/chasqui/internal/config"
	"github.com/chasquibot/chasqui/internal/content"
	"github.com/chasquibot/chasqui/internal/conversation"
	"github.com/chasquibot/chasqui/internal/gemini"
	"github.com/chasquibot/chasqui/internal/handlers"
	"github.com/chasquibot/chasqui/internal/logger"
	"github.com/chasquibot/chasqui/internal/respond"
	"github.com/chasquibot/chasqui/internal/server"
	"github.com/chasquibot/chasqui/internal/twilio"
	"github.com/chasquibot/chasqui/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideStore,
			provideGeminiClient,
			provideMediaClient,
			provideAssembler,
			provideResponder,
			handlers.NewPingHandler,
			provideWebhookHandler,
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideConfig() (config.Config, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideStore(cfg config.Config) *conversation.Store {
	return conversation.NewStore(cfg.Chat.MaxHistory)
}

func provideGeminiClient(log *slog.Logger, cfg config.Config) *gemini.Client {
	g := cfg.Gemini
	return gemini.NewClient(log, g.APIKey, g.BaseURL, g.PrimaryModel, g.FallbackModel, g.ModelTimeout())
}

func provideMediaClient(log *slog.Logger, cfg config.Config) *twilio.MediaClient {
	t := cfg.Twilio
	return twilio.NewMediaClient(log, t.AccountSID, t.AuthToken, t.MediaTimeout())
}

func provideAssembler(log *slog.Logger, media *twilio.MediaClient) *content.Assembler {
	return content.NewAssembler(log, media)
}

func provideResponder(log *slog.Logger, store *conversation.Store, client *gemini.Client) *respond.Responder {
	return respond.NewResponder(log, store, client)
}

func provideWebhookHandler(log *slog.Logger, cfg config.Config, assembler *content.Assembler, responder *respond.Responder) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, assembler, responder, cfg.Chat.ReplyMaxLength)
}

func provideServer(cfg config.Config, ping *handlers.PingHandler, webhook *handlers.WebhookHandler) *server.Server {
	return server.NewServer(cfg.Server.Addr, ping, webhook)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting chasqui %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
