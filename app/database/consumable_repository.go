package database

import (
	"fmt"
)

// ConsumableRepository handles database operations for per-country
// availability windows
type ConsumableRepository struct {
	db *DB
}

func NewConsumableRepository(db *DB) *ConsumableRepository {
	return &ConsumableRepository{db: db}
}

// UpsertConsumable inserts or fully overwrites the availability window for
// one (film, country) pair. Unlike the film upsert this replaces both
// timestamp columns unconditionally; the window is always current as of the
// fetch.
func (r *ConsumableRepository) UpsertConsumable(c Consumable) error {
	_, err := r.db.Exec(`
		INSERT INTO film_consumables (
			film_id, country_code, available_at, expires_at
		) VALUES (?, ?, ?, ?)
		ON CONFLICT(film_id, country_code) DO UPDATE SET
			available_at = excluded.available_at,
			expires_at = excluded.expires_at
	`, c.FilmID, c.CountryCode, c.AvailableAt, c.ExpiresAt)

	if err != nil {
		return fmt.Errorf("failed to upsert consumable for film %d in %s: %w",
			c.FilmID, c.CountryCode, err)
	}

	return nil
}

// GetConsumables returns every availability window recorded for a film.
func (r *ConsumableRepository) GetConsumables(filmID int) ([]Consumable, error) {
	rows, err := r.db.Query(`
		SELECT film_id, country_code, available_at, expires_at
		FROM film_consumables
		WHERE film_id = ?
		ORDER BY country_code
	`, filmID)
	if err != nil {
		return nil, fmt.Errorf("failed to get consumables for film %d: %w", filmID, err)
	}
	defer rows.Close()

	var consumables []Consumable
	for rows.Next() {
		var c Consumable
		if err := rows.Scan(&c.FilmID, &c.CountryCode, &c.AvailableAt, &c.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan consumable row: %w", err)
		}
		consumables = append(consumables, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consumable rows: %w", err)
	}

	return consumables, nil
}

// GetCountryCounts returns the number of availability rows per country.
func (r *ConsumableRepository) GetCountryCounts() ([]CountryCount, error) {
	rows, err := r.db.Query(`
		SELECT country_code, COUNT(*)
		FROM film_consumables
		GROUP BY country_code
		ORDER BY country_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get country counts: %w", err)
	}
	defer rows.Close()

	var counts []CountryCount
	for rows.Next() {
		var c CountryCount
		if err := rows.Scan(&c.CountryCode, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan country count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country count rows: %w", err)
	}

	return counts, nil
}
