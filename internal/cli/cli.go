// Package cli implements the staffctl operator commands.
package cli

import (
	"github.com/Mithilesh71320/nextera-code/internal/config"
	"github.com/Mithilesh71320/nextera-code/internal/database"
	"github.com/Mithilesh71320/nextera-code/internal/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// openDB is swapped in tests
var openDB = func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return database.Connect(cfg, log)
}

type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func connect() (*env, error) {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	db, err := openDB(cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}
