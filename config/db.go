package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

const retryDelay = 5 * time.Second

// InitDBWithRetry attempts to connect to PostgreSQL with retries and
// returns the open handle. There is deliberately no package-level handle:
// the caller owns the connection and passes it down explicitly.
func InitDBWithRetry(maxRetries int) (*sql.DB, error) {
	var err error
	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = InitDB()
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to PostgreSQL (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err)
}

// InitDB opens the PostgreSQL pool and verifies connectivity.
func InitDB() (*sql.DB, error) {
	host := GetEnvWithDefault("DB_HOST", "localhost")
	port := GetEnvWithDefault("DB_PORT", "5432")
	user := GetEnvWithDefault("DB_USER", "postgres")
	password := GetEnvWithDefault("DB_PASSWORD", "")
	dbname := GetEnvWithDefault("DB_NAME", "phonepe_db")
	sslmode := GetEnvWithDefault("DB_SSL_MODE", "")
	if sslmode == "" {
		if strings.Contains(host, "aivencloud.com") {
			sslmode = "require"
		} else {
			sslmode = "disable"
		}
	}

	log.Printf("DB Host: %s", host)
	log.Printf("DB Port: %s", port)
	log.Printf("DB Name: %s", dbname)
	log.Printf("SSL Mode: %s", sslmode)

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening PostgreSQL database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL database: %v", err)
	}

	log.Printf("Successfully connected to PostgreSQL database: %s", dbname)
	return db, nil
}

// ExistingTables reports which of the given relations exist. A missing
// relation is surfaced later as a no-data state, so this only informs the
// health endpoint and startup log.
func ExistingTables(ctx context.Context, db *sql.DB, names []string) []string {
	var existing []string
	for _, name := range names {
		var exists bool
		err := db.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = $1
			)`, name).Scan(&exists)
		if err == nil && exists {
			existing = append(existing, name)
		}
	}
	return existing
}

// CheckPostgresHealth pings the database with a short timeout.
func CheckPostgresHealth(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL health check failed: %v", err)
	}
	return nil
}

// CloseDB closes the pool, logging rather than failing on error.
func CloseDB(db *sql.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing PostgreSQL connection: %v", err)
	}
}
