package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	admin_id UUID NOT NULL REFERENCES users(id),
	last_message TEXT NOT NULL DEFAULT '',
	last_message_at TIMESTAMPTZ,
	unread_count INT NOT NULL DEFAULT 0 CHECK (unread_count >= 0),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (admin_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_conversations_admin ON conversations (admin_id, last_message_at DESC);
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations (user_id);

CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY,
	conversation_id UUID NOT NULL REFERENCES conversations(id),
	sender_id UUID NOT NULL REFERENCES users(id),
	recipient_id UUID NOT NULL REFERENCES users(id),
	content TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages (conversation_id, created_at DESC);

CREATE TABLE IF NOT EXISTS plans (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	min_amount NUMERIC(20,8) NOT NULL,
	max_amount NUMERIC(20,8) NOT NULL,
	duration_days INT NOT NULL,
	roi_percent NUMERIC(8,4) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS transactions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id),
	plan_id UUID REFERENCES plans(id),
	type TEXT NOT NULL,
	amount NUMERIC(20,8) NOT NULL CHECK (amount > 0),
	status TEXT NOT NULL DEFAULT 'pending',
	proof_key TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	settled_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions (user_id, created_at DESC);
`

func InitPgx(cfg *AppConfig) *pgxpool.Pool {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBConnectionString())
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}

	if err := pool.Ping(ctx); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.DBMigrate {
		if _, err := pool.Exec(ctx, schema); err != nil {
			slog.Error("Failed to migrate database schema", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema migrated successfully")
	} else {
		slog.Info("Database migration skipped (DB_MIGRATE=false)")
	}

	slog.Info("Database connected successfully")
	return pool
}
