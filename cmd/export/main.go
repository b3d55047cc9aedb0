package main

import (
	"context"
	"flag"
	"log"
	"os"

	"SeriesVault/internal/repository"
	"SeriesVault/internal/usecase"
	"SeriesVault/pkg/config"
	applogger "SeriesVault/pkg/logger"
	"SeriesVault/pkg/metrics"
)

// export rebuilds the JSON cache from the stores once and exits.
func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	stores, err := repository.OpenStoreSet(cfg.Storage.Dir, l)
	if err != nil {
		l.Error("store open failed", applogger.Error(err))
		os.Exit(1)
	}
	defer stores.Close()

	mat := usecase.NewMaterializer(stores, cfg.Cache.Path, metrics.New(), l)

	stats, err := mat.Materialize(context.Background())
	if err != nil {
		l.Error("export failed", applogger.Error(err))
		os.Exit(1)
	}

	for class, n := range stats.PerClass {
		l.Info("exported", applogger.String("class", class), applogger.Int("symbols", n))
	}
	l.Info("cache written",
		applogger.String("path", cfg.Cache.Path),
		applogger.Int("symbols", stats.Symbols),
	)
}
