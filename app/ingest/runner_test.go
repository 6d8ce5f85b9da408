package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ebalashov/filmsync/app/catalog"
	"github.com/ebalashov/filmsync/app/cfg"
)

// The fakes share one event log so stage ordering is observable.

type fakeMigrator struct {
	events *[]string
	err    error
}

func (f *fakeMigrator) Run(ctx context.Context) error {
	*f.events = append(*f.events, "migrate")
	return f.err
}

type fakeFetcher struct {
	events      *[]string
	failCountry string
}

func (f *fakeFetcher) FetchAll(ctx context.Context, countryCode string, fn func(*catalog.Page) error) (int, error) {
	*f.events = append(*f.events, "fetch:"+countryCode)
	if countryCode == f.failCountry {
		return 0, errors.New("boom")
	}
	page := &catalog.Page{
		Films: []catalog.Film{plainRecord()},
	}
	if err := fn(page); err != nil {
		return 1, err
	}
	return 1, nil
}

func (f *fakeFetcher) Pause(ctx context.Context) error {
	*f.events = append(*f.events, "pause")
	return nil
}

type fakeMetadata struct {
	events *[]string
	stamps []time.Time
}

func (f *fakeMetadata) SetUpdatedAt(t time.Time) error {
	*f.events = append(*f.events, "stamp")
	f.stamps = append(f.stamps, t)
	return nil
}

func testCountries(codes ...string) []cfg.Country {
	countries := make([]cfg.Country, 0, len(codes))
	for _, code := range codes {
		countries = append(countries, cfg.Country{Code: code, Name: code})
	}
	return countries
}

func newTestRunner(migrator *fakeMigrator, fetcher *fakeFetcher,
	metadata *fakeMetadata, countries []cfg.Country) *Runner {
	reconciler := NewReconciler(&fakeFilmStore{}, &fakeConsumableStore{})
	return NewRunner(migrator, fetcher, reconciler, metadata, countries)
}

func TestRunnerStageOrdering(t *testing.T) {
	var events []string
	migrator := &fakeMigrator{events: &events}
	fetcher := &fakeFetcher{events: &events}
	metadata := &fakeMetadata{events: &events}

	runner := newTestRunner(migrator, fetcher, metadata, testCountries("US", "GB", "FR"))

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{"migrate", "fetch:US", "pause", "fetch:GB", "pause", "fetch:FR", "stamp"}
	if fmt.Sprint(events) != fmt.Sprint(expected) {
		t.Errorf("Unexpected stage order:\n got %v\nwant %v", events, expected)
	}

	if len(metadata.stamps) != 1 {
		t.Errorf("Expected exactly one completion stamp, got %d", len(metadata.stamps))
	}
}

func TestRunnerMigrationFailureGatesIngestion(t *testing.T) {
	var events []string
	migrator := &fakeMigrator{events: &events, err: errors.New("drift")}
	fetcher := &fakeFetcher{events: &events}
	metadata := &fakeMetadata{events: &events}

	runner := newTestRunner(migrator, fetcher, metadata, testCountries("US"))

	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("Expected migration error, got nil")
	}

	for _, event := range events {
		if event != "migrate" {
			t.Errorf("No stage may run after a migration failure, saw %s", event)
		}
	}
}

func TestRunnerCountryFailureAbortsRun(t *testing.T) {
	var events []string
	migrator := &fakeMigrator{events: &events}
	fetcher := &fakeFetcher{events: &events, failCountry: "GB"}
	metadata := &fakeMetadata{events: &events}

	runner := newTestRunner(migrator, fetcher, metadata, testCountries("US", "GB", "FR"))

	err := runner.Run(context.Background())
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	for _, event := range events {
		if event == "fetch:FR" {
			t.Error("Later countries must not be processed after a failure")
		}
		if event == "stamp" {
			t.Error("Completion must not be stamped after a failure")
		}
	}
}
