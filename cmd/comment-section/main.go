// Демо-драйвер виджета: конфиг -> логгер -> httpapi-клиент -> загрузка
// секции -> текстовый рендер дерева в stdout. Полный путь данных виджета
// от удалённого хранилища до поверхности отображения.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/go-comment-section/internal/config"
	"github.com/pribylovaa/go-comment-section/internal/render"
	"github.com/pribylovaa/go-comment-section/internal/section"
	"github.com/pribylovaa/go-comment-section/internal/store/httpapi"
	logctx "github.com/pribylovaa/go-comment-section/pkg/log"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting comment-section", "env", cfg.Env, "api", cfg.API.BaseURL)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	ctx := logctx.Into(rootCtx, log)

	client := httpapi.New(*cfg)
	sec := section.New(client)

	// Одноразовая начальная загрузка: loading -> ready | failed.
	if err := sec.Load(ctx); err != nil {
		// Отказ загрузки — единственная ошибка с «широким» эффектом:
		// вместо списка показывается панель ошибки.
		log.Error("load_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	render.Tree(os.Stdout, sec.Comments(), time.Now())
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
