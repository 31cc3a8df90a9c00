package main

import (
	"net/http"

	"canvaspad/config"
	"canvaspad/config/database"
	"canvaspad/pkg/logger"
	"canvaspad/router"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Sugar.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	handler := router.Setup(db, cfg)

	logger.Sugar.Infof("Canvaspad backend listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}
