// cmd/migrate/main.go
package main

import (
	"log"
	"os"

	"github.com/openchurch/campaign-service/internal/config"
	"github.com/openchurch/campaign-service/internal/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = "migrations"
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := db.Migrate(conn, dir); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}
