package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is the PostgreSQL implementation of Repository, backed
// by the userprefs table (see migrations/001_userprefs.sql).
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (Record, error) {
	query := `
		SELECT user_id, location, ideal_temp, units
		FROM userprefs
		WHERE user_id = $1
	`

	var rec Record
	var location, units *string

	err := r.pool.QueryRow(ctx, query, userID).Scan(&rec.UserID, &location, &rec.IdealTemp, &units)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("querying preferences for %s: %w", userID, err)
	}

	if location != nil {
		rec.Location = *location
	}
	if units != nil {
		rec.Units = *units
	}
	return rec, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO userprefs (user_id, location, ideal_temp, units, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id)
		DO UPDATE SET location = $2, ideal_temp = $3, units = $4, updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, rec.UserID, rec.Location, rec.IdealTemp, rec.Units); err != nil {
		return fmt.Errorf("upserting preferences for %s: %w", rec.UserID, err)
	}
	return nil
}

func (r *PostgresRepository) Locations(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT location
		FROM userprefs
		WHERE location IS NOT NULL AND location <> ''
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying preference locations: %w", err)
	}
	defer rows.Close()

	var locations []string
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, fmt.Errorf("scanning preference location: %w", err)
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}
