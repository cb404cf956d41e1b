package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	// Profile ids come from the identity provider, never generated here.
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		avatar_url VARCHAR(500),
		bio TEXT,
		location VARCHAR(255),
		website VARCHAR(500),
		role VARCHAR(50),
		tier VARCHAR(20) NOT NULL DEFAULT 'free',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_profiles_role ON profiles(role)`,

	// Migration: tighten tier values for databases created before the
	// subscription work landed
	`ALTER TABLE profiles ALTER COLUMN tier SET DEFAULT 'free'`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
