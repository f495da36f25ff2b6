// Package app assembles the condition-form bot: configuration, storage
// backend selection, and the Telegram run options consumed by the core
// runner.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tele "gopkg.in/telebot.v4"

	corebootstrap "github.com/Awindblowsggggg/Telegrambot/core/bootstrap"
	corecmd "github.com/Awindblowsggggg/Telegrambot/core/cmd"
	coretelegram "github.com/Awindblowsggggg/Telegrambot/core/telegram"
	tghelpers "github.com/Awindblowsggggg/Telegrambot/core/telegram/helpers"
	"github.com/Awindblowsggggg/Telegrambot/core/telegram/router"
	"github.com/Awindblowsggggg/Telegrambot/internal/bot"
	"github.com/Awindblowsggggg/Telegrambot/internal/form"
	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

// App holds the wired application ready to produce Telegram run options.
type App struct {
	cfg   *AppConfig
	store record.Store
	bot   *bot.Bot
}

// LoadCarrier adapts LoadConfig to the core runner's loader signature.
func LoadCarrier(path string) (corecmd.ConfigCarrier, error) {
	return LoadConfig(path)
}

// Bootstrap initializes infrastructure and wires the bot service.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*AppConfig)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:       cfg.CoreConfig(),
		WithDatabase: cfg.Storage.Driver == StoragePostgres,
		Database:     cfg.Storage.Database,
	})
	if err != nil {
		return nil, err
	}

	var store record.Store
	switch cfg.Storage.Driver {
	case StoragePostgres:
		store = record.NewPostgresStore(res.DB)
	default:
		if dir := filepath.Dir(cfg.Storage.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("app: create storage dir: %w", err)
			}
		}
		store, err = record.NewFileStore(cfg.Storage.File)
		if err != nil {
			return nil, err
		}
	}

	var exporter *record.CSVExporter
	if cfg.Storage.CSV != "" {
		if dir := filepath.Dir(cfg.Storage.CSV); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("app: create export dir: %w", err)
			}
		}
		exporter = record.NewCSVExporter(cfg.Storage.CSV)
	}

	engine := form.NewEngine(&cfg.Catalog, store)
	svc := bot.New(engine, store, exporter, cfg.Telegram.BroadcastChatID)

	return &App{cfg: cfg, store: store, bot: svc}, nil
}

// TelegramRunOptions builds the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	reg := coretelegram.NewRegistry()
	a.bot.Register(reg)
	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, "Send /start to begin a new form.")
	})

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.bot, reg, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(core, nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			return a.store.Close()
		},
	}, nil
}
