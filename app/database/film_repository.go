package database

import (
	"database/sql"
	"fmt"
)

// FilmRepository handles database operations for films
type FilmRepository struct {
	db *DB
}

func NewFilmRepository(db *DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// UpsertFilm inserts a film keyed by its upstream id. On conflict only the
// volatile metrics (rating, rating count, popularity) are refreshed;
// identity and descriptive columns keep their first-sighting values.
func (r *FilmRepository) UpsertFilm(film Film) error {
	_, err := r.db.Exec(`
		INSERT INTO films (
			id, slug, title, original_title, directors, year, duration,
			synopsis, editorial, still_url, trailer_url, average_colour_hex,
			average_rating, number_of_ratings, popularity, type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			average_rating = excluded.average_rating,
			number_of_ratings = excluded.number_of_ratings,
			popularity = excluded.popularity
	`, film.ID, film.Slug, film.Title, film.OriginalTitle, film.Directors,
		film.Year, film.Duration, film.Synopsis, film.Editorial, film.StillURL,
		film.TrailerURL, film.AverageColourHex, film.AverageRating,
		film.NumberOfRatings, film.Popularity, film.Type)

	if err != nil {
		return fmt.Errorf("failed to upsert film %d: %w", film.ID, err)
	}

	return nil
}

// GetFilm retrieves a film by id. Returns nil without error when absent.
func (r *FilmRepository) GetFilm(id int) (*Film, error) {
	var film Film
	err := r.db.QueryRow(`
		SELECT id, slug, title, original_title, directors, year, duration,
		       synopsis, editorial, still_url, trailer_url, average_colour_hex,
		       average_rating, number_of_ratings, popularity, type
		FROM films
		WHERE id = ?
	`, id).Scan(
		&film.ID, &film.Slug, &film.Title, &film.OriginalTitle, &film.Directors,
		&film.Year, &film.Duration, &film.Synopsis, &film.Editorial, &film.StillURL,
		&film.TrailerURL, &film.AverageColourHex, &film.AverageRating,
		&film.NumberOfRatings, &film.Popularity, &film.Type,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get film %d: %w", id, err)
	}

	return &film, nil
}

// GetFilms returns a page of films ordered by popularity. When countryCode
// is non-empty only films with an availability window in that country are
// returned.
func (r *FilmRepository) GetFilms(countryCode string, limit, offset int) ([]Film, error) {
	query := `
		SELECT id, slug, title, original_title, directors, year, duration,
		       synopsis, editorial, still_url, trailer_url, average_colour_hex,
		       average_rating, number_of_ratings, popularity, type
		FROM films
		ORDER BY popularity DESC, id
		LIMIT ? OFFSET ?
	`
	args := []interface{}{limit, offset}

	if countryCode != "" {
		query = `
			SELECT f.id, f.slug, f.title, f.original_title, f.directors, f.year, f.duration,
			       f.synopsis, f.editorial, f.still_url, f.trailer_url, f.average_colour_hex,
			       f.average_rating, f.number_of_ratings, f.popularity, f.type
			FROM films f
			JOIN film_consumables fc ON fc.film_id = f.id
			WHERE fc.country_code = ?
			ORDER BY f.popularity DESC, f.id
			LIMIT ? OFFSET ?
		`
		args = []interface{}{countryCode, limit, offset}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get films: %w", err)
	}
	defer rows.Close()

	var films []Film
	for rows.Next() {
		var film Film
		err := rows.Scan(
			&film.ID, &film.Slug, &film.Title, &film.OriginalTitle, &film.Directors,
			&film.Year, &film.Duration, &film.Synopsis, &film.Editorial, &film.StillURL,
			&film.TrailerURL, &film.AverageColourHex, &film.AverageRating,
			&film.NumberOfRatings, &film.Popularity, &film.Type,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan film row: %w", err)
		}
		films = append(films, film)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating film rows: %w", err)
	}

	return films, nil
}

// GetFilmCount returns the total number of rows of the given type, or of all
// rows when filmType is empty.
func (r *FilmRepository) GetFilmCount(filmType string) (int, error) {
	var count int
	var err error
	if filmType == "" {
		err = r.db.QueryRow("SELECT COUNT(*) FROM films").Scan(&count)
	} else {
		err = r.db.QueryRow("SELECT COUNT(*) FROM films WHERE type = ?", filmType).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get film count: %w", err)
	}
	return count, nil
}
