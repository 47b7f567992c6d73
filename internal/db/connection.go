package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/hsm-gustavo/jobboard/internal/config"
)

// DSN builds the go-sql-driver DSN for cfg. Dial, read and write timeouts
// all use ConnectTimeout so an unreachable server fails fast.
func DSN(cfg config.DatabaseConfig) string {
	// refer to https://github.com/go-sql-driver/mysql/?tab=readme-ov-file#dsn-data-source-name
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Timeout = cfg.ConnectTimeout
	mc.ReadTimeout = cfg.ConnectTimeout
	mc.WriteTimeout = cfg.ConnectTimeout
	return mc.FormatDSN()
}

// Connect opens the pool and verifies it with a bounded ping. The pool is
// meant to be opened once at startup and shared by every store.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("unable to open DB connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	return db, nil
}
