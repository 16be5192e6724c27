package main

import (
	"log"
	"os"

	"github.com/shareit-go/shareit-server/internal/config"
	"github.com/shareit-go/shareit-server/internal/db"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("migration direction (up/down) is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch os.Args[1] {
	case "up":
		if err := db.MigrateUp(cfg.DBDSN, cfg.MigrationsDir); err != nil {
			log.Fatal(err)
		}
	case "down":
		if err := db.MigrateDown(cfg.DBDSN, cfg.MigrationsDir); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal("invalid direction, use 'up' or 'down'")
	}
}
