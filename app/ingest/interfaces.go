package ingest

import (
	"context"
	"time"

	"github.com/ebalashov/filmsync/app/catalog"
	"github.com/ebalashov/filmsync/app/database"
)

type FilmStore interface {
	UpsertFilm(film database.Film) error
}

type ConsumableStore interface {
	UpsertConsumable(c database.Consumable) error
}

type MetadataStore interface {
	SetUpdatedAt(t time.Time) error
}

// MigrationRunner gates ingestion: no country is processed until it
// succeeds.
type MigrationRunner interface {
	Run(ctx context.Context) error
}

// PageFetcher produces validated listing pages for one country.
type PageFetcher interface {
	FetchAll(ctx context.Context, countryCode string, fn func(*catalog.Page) error) (int, error)
	Pause(ctx context.Context) error
}
