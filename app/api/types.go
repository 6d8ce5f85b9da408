package api

import (
	"github.com/ebalashov/filmsync/app/cfg"
	"github.com/ebalashov/filmsync/app/database"
)

type Handler struct {
	films       *database.FilmRepository
	consumables *database.ConsumableRepository
	metadata    *database.MetadataRepository
	countries   []cfg.Country
}

type filmResponse struct {
	ID               int      `json:"id"`
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	Directors        string   `json:"directors"`
	Year             int      `json:"year"`
	Duration         int      `json:"duration"`
	Synopsis         string   `json:"synopsis"`
	Editorial        *string  `json:"editorial"`
	StillURL         *string  `json:"still_url"`
	TrailerURL       *string  `json:"trailer_url"`
	AverageColourHex string   `json:"average_colour_hex"`
	AverageRating    *float64 `json:"average_rating"`
	NumberOfRatings  *int     `json:"number_of_ratings"`
	Popularity       float64  `json:"popularity"`
	Type             string   `json:"type"`
}

type availabilityResponse struct {
	CountryCode string  `json:"country_code"`
	AvailableAt *string `json:"available_at"`
	ExpiresAt   *string `json:"expires_at"`
}

func toFilmResponse(film database.Film) filmResponse {
	return filmResponse{
		ID:               film.ID,
		Slug:             film.Slug,
		Title:            film.Title,
		OriginalTitle:    film.OriginalTitle,
		Directors:        film.Directors,
		Year:             film.Year,
		Duration:         film.Duration,
		Synopsis:         film.Synopsis,
		Editorial:        film.Editorial,
		StillURL:         film.StillURL,
		TrailerURL:       film.TrailerURL,
		AverageColourHex: film.AverageColourHex,
		AverageRating:    film.AverageRating,
		NumberOfRatings:  film.NumberOfRatings,
		Popularity:       film.Popularity,
		Type:             film.Type,
	}
}

func toAvailabilityResponses(consumables []database.Consumable) []availabilityResponse {
	out := make([]availabilityResponse, 0, len(consumables))
	for _, c := range consumables {
		out = append(out, availabilityResponse{
			CountryCode: c.CountryCode,
			AvailableAt: c.AvailableAt,
			ExpiresAt:   c.ExpiresAt,
		})
	}
	return out
}
