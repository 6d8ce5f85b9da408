package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ebalashov/filmsync/app/catalog"
	"github.com/ebalashov/filmsync/app/cfg"
)

// Runner drives one full sync: migrations first, then every country market
// sequentially, then the run-completion stamp. Countries are never fetched
// concurrently; the fixed inter-request pacing is part of the upstream
// contract.
//
// There is no per-country or per-page checkpoint. A failure aborts the whole
// run and a rerun starts over from the first market; film and availability
// upserts are idempotent, so reruns converge on the same final state.
type Runner struct {
	migrator   MigrationRunner
	fetcher    PageFetcher
	reconciler *Reconciler
	metadata   MetadataStore
	countries  []cfg.Country
}

func NewRunner(migrator MigrationRunner, fetcher PageFetcher, reconciler *Reconciler,
	metadata MetadataStore, countries []cfg.Country) *Runner {
	return &Runner{
		migrator:   migrator,
		fetcher:    fetcher,
		reconciler: reconciler,
		metadata:   metadata,
		countries:  countries,
	}
}

// Run executes the full pipeline. Any error at any stage aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	started := time.Now()

	if err := r.migrator.Run(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for i, country := range r.countries {
		if i > 0 {
			if err := r.fetcher.Pause(ctx); err != nil {
				return err
			}
		}

		if err := r.syncCountry(ctx, country); err != nil {
			return fmt.Errorf("failed to sync %s: %w", country.Code, err)
		}
	}

	if err := r.metadata.SetUpdatedAt(time.Now()); err != nil {
		return err
	}

	slog.Info("Run completed",
		"countries", len(r.countries),
		"duration", time.Since(started).Round(time.Second))

	return nil
}

func (r *Runner) syncCountry(ctx context.Context, country cfg.Country) error {
	slog.Info("Fetching films", "country", country.Code, "name", country.Name)

	films := 0
	series := 0

	pages, err := r.fetcher.FetchAll(ctx, country.Code, func(page *catalog.Page) error {
		for _, record := range page.Films {
			if err := r.reconciler.Reconcile(record, country.Code); err != nil {
				return err
			}
			if record.Episode != nil {
				series++
			} else {
				films++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Country completed",
		"country", country.Code,
		"pages", pages,
		"films", films,
		"series", series)

	return nil
}
