package database

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database. SQLite is the default (single-user desktop
// deployment, like the original installation); a Postgres DSN switches to a
// shared server.
//
// Env: POSTGRES_DSN (full DSN, optional), SQLITE_PATH (default location.db).
func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "location.db"
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	DB = db
}
