package ingest

import (
	"fmt"
	"strings"

	"github.com/ebalashov/filmsync/app/catalog"
	"github.com/ebalashov/filmsync/app/database"
)

// tileArtworkFormat tags the series artwork used as the representative
// still.
const tileArtworkFormat = "tile_artwork"

// Reconciler maps raw upstream records to normalized rows and writes them
// through the store. Each record yields at most one film row plus, when an
// availability window is present, one (film, country) consumable row.
type Reconciler struct {
	films       FilmStore
	consumables ConsumableStore
}

func NewReconciler(films FilmStore, consumables ConsumableStore) *Reconciler {
	return &Reconciler{films: films, consumables: consumables}
}

// Reconcile classifies one raw record as a plain film or an
// episode-as-film and upserts the resulting row. The availability window,
// when present, is upserted under the country the record was fetched for.
func (r *Reconciler) Reconcile(record catalog.Film, countryCode string) error {
	var film database.Film
	if record.Episode != nil {
		mapped, err := mapSeries(record)
		if err != nil {
			return err
		}
		film = mapped
	} else {
		film = mapFilm(record)
	}

	if err := r.films.UpsertFilm(film); err != nil {
		return err
	}

	if record.Consumable == nil {
		return nil
	}
	return r.consumables.UpsertConsumable(database.Consumable{
		FilmID:      record.ID,
		CountryCode: countryCode,
		AvailableAt: record.Consumable.AvailableAt,
		ExpiresAt:   record.Consumable.ExpiresAt,
	})
}

// mapFilm maps a plain film record. Year, duration and popularity are
// guaranteed non-nil by page validation.
func mapFilm(record catalog.Film) database.Film {
	stillURL := record.StillURL
	return database.Film{
		ID:               record.ID,
		Slug:             record.Slug,
		Title:            record.Title,
		OriginalTitle:    record.OriginalTitle,
		Directors:        joinDirectors(record.Directors),
		Year:             *record.Year,
		Duration:         *record.Duration,
		Synopsis:         record.ShortSynopsis,
		Editorial:        record.DefaultEditorial,
		StillURL:         &stillURL,
		TrailerURL:       record.TrailerURL,
		AverageColourHex: record.AverageColourHex,
		AverageRating:    record.AverageRatingOutOfTen,
		NumberOfRatings:  record.NumberOfRatings,
		Popularity:       *record.Popularity,
		Type:             database.TypeFilm,
	}
}

// mapSeries maps an episode-as-film record. Identity comes from the
// embedded series (the outer record's slug is episode-specific) while
// ratings, popularity, colour and availability stay with the outer record,
// since the series object lacks precise per-viewing data. Duration is 0:
// the total runtime is not derivable from a single episode.
func mapSeries(record catalog.Film) (database.Film, error) {
	series := record.Series
	if series == nil {
		return database.Film{}, fmt.Errorf("record %d has an episode but no series object", record.ID)
	}

	return database.Film{
		ID:               record.ID,
		Slug:             series.Slug,
		Title:            series.Title,
		OriginalTitle:    series.OriginalTitle,
		Directors:        joinDirectors(record.Directors),
		Year:             *record.Year,
		Duration:         0,
		Synopsis:         record.ShortSynopsis,
		Editorial:        record.DefaultEditorial,
		StillURL:         findArtwork(series.Artworks, tileArtworkFormat),
		TrailerURL:       firstSeasonTrailer(series.Seasons),
		AverageColourHex: record.AverageColourHex,
		AverageRating:    record.AverageRatingOutOfTen,
		NumberOfRatings:  record.NumberOfRatings,
		Popularity:       *record.Popularity,
		Type:             database.TypeSeries,
	}, nil
}

func joinDirectors(directors []catalog.Director) string {
	names := make([]string, 0, len(directors))
	for _, d := range directors {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}

func findArtwork(artworks []catalog.Artwork, format string) *string {
	for _, a := range artworks {
		if a.Format == format {
			imageURL := a.ImageURL
			return &imageURL
		}
	}
	return nil
}

func firstSeasonTrailer(seasons []catalog.Season) *string {
	if len(seasons) == 0 {
		return nil
	}
	return seasons[0].TrailerURL
}
