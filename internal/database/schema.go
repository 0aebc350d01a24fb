package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the single definition of the tables. Every statement is
// idempotent so Migrate can run on each start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255)    NOT NULL,
		genres              JSON            NOT NULL,
		address             VARCHAR(120)    NOT NULL DEFAULT '',
		city                VARCHAR(120)    NOT NULL,
		state               VARCHAR(120)    NOT NULL,
		phone               VARCHAR(120)    NOT NULL DEFAULT '',
		website             VARCHAR(500)    NOT NULL DEFAULT '',
		facebook_link       VARCHAR(500)    NOT NULL DEFAULT '',
		seeking_talent      BOOLEAN         NOT NULL DEFAULT FALSE,
		seeking_description TEXT            NOT NULL,
		image_link          VARCHAR(500)    NOT NULL DEFAULT '',
		created_at          DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_venues_area (city, state),
		KEY idx_venues_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                VARCHAR(255)    NOT NULL,
		genres              JSON            NOT NULL,
		city                VARCHAR(120)    NOT NULL,
		state               VARCHAR(120)    NOT NULL,
		phone               VARCHAR(120)    NOT NULL DEFAULT '',
		website             VARCHAR(500)    NOT NULL DEFAULT '',
		facebook_link       VARCHAR(500)    NOT NULL DEFAULT '',
		seeking_venue       BOOLEAN         NOT NULL DEFAULT FALSE,
		seeking_description TEXT            NOT NULL,
		image_link          VARCHAR(500)    NOT NULL DEFAULT '',
		created_at          DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_artists_area (city, state),
		KEY idx_artists_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		artist_id  BIGINT UNSIGNED NOT NULL,
		venue_id   BIGINT UNSIGNED NOT NULL,
		start_time DATETIME        NOT NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_shows_artist_start (artist_id, start_time),
		KEY idx_shows_venue_start (venue_id, start_time),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id),
		CONSTRAINT fk_shows_venue  FOREIGN KEY (venue_id)  REFERENCES venues (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
