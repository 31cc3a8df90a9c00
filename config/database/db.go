package database

import (
	"database/sql"
	"fmt"
	"time"

	"canvaspad/config"
	"canvaspad/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens the Postgres pool described by cfg and verifies it is
// alive, retrying a few times in case of temporary DNS/network blips.
func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=require",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return db, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		time.Sleep(2 * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("connect to database after retries: %w", err)
}
