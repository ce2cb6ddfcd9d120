package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/threadbot/internal/config"
	"github.com/sandevgo/threadbot/internal/providers/llm"
	"github.com/sandevgo/threadbot/internal/service/engagement"
	"github.com/sandevgo/threadbot/internal/service/history"
	"github.com/sandevgo/threadbot/internal/service/responder"
	"github.com/sandevgo/threadbot/internal/storage/sqlite"
	"github.com/sandevgo/threadbot/internal/transport/cli"
	"github.com/sandevgo/threadbot/pkg/log"
	"github.com/sandevgo/threadbot/pkg/srv"
)

// app holds what every command needs: configuration and the forum snapshot.
type app struct {
	cfg        *config.AppConfig
	heuristics *config.HeuristicsConfig
	db         *sql.DB
	forum      *sqlite.ForumRepo
}

func newApp(ctx context.Context) (*app, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	heuristics := config.NewHeuristicsConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        appCfg,
		heuristics: heuristics,
		db:         db,
		forum:      sqlite.NewForumRepo(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) scorer() *engagement.Scorer {
	return engagement.NewScorer(a.forum, *a.cfg, *a.heuristics)
}

func (a *app) collator() *history.Collator {
	return history.NewCollator(a.forum, *a.heuristics)
}

func (a *app) responder(ctx context.Context) (*responder.Responder, error) {
	genCfg := config.NewGenerationConfig(ctx)

	gen, err := llm.NewGenerator(ctx, genCfg)
	if err != nil {
		return nil, err
	}
	return responder.NewResponder(a.scorer(), a.collator(), gen, *genCfg), nil
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	a, err := newApp(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(a.Close))

	resp, err := a.responder(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize text generator")
	}

	console, err := cli.NewReadLine(a.cfg, a.forum, resp)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize console")
	}
	services = append(services, console)

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := config.AppConfig{RuntimePath: runtimePath}.GetEnvPath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
