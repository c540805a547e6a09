package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"photofeed/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

const schemaFile = "migrations/001_create_tables.sql"

type DB struct {
	*sqlx.DB
}

// ConnectDB opens the Postgres pool and applies the schema.
func ConnectDB(ctx context.Context, cfg *config.Config) (*DB, error) {
	log.Info().Str("host", cfg.DB.Host).Str("dbname", cfg.DB.Name).Msg("connecting to postgres")

	conn, err := sqlx.ConnectContext(ctx, "postgres", cfg.DB.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	db := &DB{conn}

	if err := db.RunMigrations(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	if err := db.HealthCheck(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db health check: %w", err)
	}

	log.Info().Msg("connected to postgres")
	return db, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes the embedded schema. Statements are idempotent.
func (db *DB) RunMigrations(ctx context.Context) error {
	schema, err := migrations.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info().Str("file", schemaFile).Msg("migrations applied")
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return errors.New("db connection is not initialized")
	}
	return db.PingContext(ctx)
}
