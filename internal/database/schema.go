package database

import (
	"context"
	"database/sql"
)

// Unique indexes are named after the public field they protect, so
// duplicate key errors can be mapped straight back to a field name.
// Cross-table references are deliberately weak: no foreign keys, so a
// delete never cascades or fails on dependents.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NULL,
		cnpj        VARCHAR(32) NOT NULL,
		active      TINYINT(1) NOT NULL,
		UNIQUE KEY cnpj (cnpj)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS units (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		company_id BIGINT NOT NULL,
		KEY units_company (company_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NULL,
		email         VARCHAR(255) NOT NULL,
		role          VARCHAR(32) NOT NULL,
		username      VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		company_id    BIGINT NULL,
		UNIQUE KEY email (email),
		UNIQUE KEY username (username),
		KEY users_company (company_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS assets (
		id           BIGINT AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		healthscore  DOUBLE NOT NULL,
		status       VARCHAR(32) NOT NULL,
		serialnumber VARCHAR(255) NULL,
		image_type   VARCHAR(64) NULL,
		image_data   MEDIUMBLOB NULL,
		description  TEXT NULL,
		user_id      BIGINT NOT NULL,
		unit_id      BIGINT NOT NULL,
		company_id   BIGINT NOT NULL,
		UNIQUE KEY serialnumber (serialnumber),
		KEY assets_company (company_id),
		KEY assets_unit (unit_id),
		KEY assets_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables the service needs when they do not
// exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
