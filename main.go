// @title Backend Éducatif API
// @version 1.0
// @description Serveur backend de la plateforme de quiz éducatifs.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"educatif_backend/internal/app"
	"educatif_backend/internal/config"
	"educatif_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
