package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the application tables when they do not exist yet.
// CREATE TABLE IF NOT EXISTS keeps startup idempotent; schema changes
// beyond that are applied out of band.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username   VARCHAR(100) NOT NULL,
			email      VARCHAR(191) NOT NULL UNIQUE,
			password   VARCHAR(100) NOT NULL,
			full_name  VARCHAR(191) NULL,
			role_id    BIGINT UNSIGNED NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name        VARCHAR(191) NOT NULL,
			description TEXT NULL,
			is_active   BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS complaints (
			id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id     BIGINT UNSIGNED NOT NULL,
			subject     VARCHAR(191) NOT NULL,
			description TEXT NOT NULL,
			photo_url   VARCHAR(255) NOT NULL,
			location    VARCHAR(255) NOT NULL DEFAULT '',
			category_id BIGINT UNSIGNED NOT NULL,
			status      VARCHAR(32) NOT NULL DEFAULT 'pending',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_complaints_user_id (user_id),
			KEY idx_complaints_category_id (category_id),
			KEY idx_complaints_created_at (created_at),
			CONSTRAINT fk_complaints_user FOREIGN KEY (user_id) REFERENCES users (id),
			CONSTRAINT fk_complaints_category FOREIGN KEY (category_id) REFERENCES categories (id)
		)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
