// @title Орфография и пунктуация — API
// @version 1.0
// @description Серверная часть курса русской орфографии и пунктуации: матрица навыков, прогресс уроков, упражнения и личный словарь.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/SilverKain/Orthography/internal/app"
	"github.com/SilverKain/Orthography/internal/config"
	"github.com/SilverKain/Orthography/pkg/configwatcher"
	"github.com/SilverKain/Orthography/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "каталог с config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	go configwatcher.WatchConfig(filepath.Join(*configPath, "config.yaml"), cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ApplyConfig(c)
		}
	})

	application.Run()
}
