package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Store configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"data.db" description:"Path to the SQLite database file"`

	// Catalog API configuration
	BaseURL        string `long:"base-url" env:"BASE_URL" default:"https://api.mubi.com/v4" description:"Catalog API base URL"`
	UserAgent      string `long:"user-agent" env:"USER_AGENT" default:"FilmSync/1.0" description:"User agent string for HTTP requests"`
	PageDelayMs    int    `long:"page-delay" env:"PAGE_DELAY_MS" default:"600" description:"Fixed delay between consecutive page requests in milliseconds"`
	RequestTimeout int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`

	// Country markets
	CountriesFile string `long:"countries-file" env:"COUNTRIES_FILE" description:"YAML file overriding the default country market list (optional)"`

	// HTTP server configuration
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port (serve mode)"`
	Serve bool   `long:"serve" env:"SERVE" description:"Serve the synced catalog over HTTP instead of running a sync"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	countries, err := loadCountries(raw.CountriesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	return &Cfg{
		DBPath:         raw.DBPath,
		BaseURL:        raw.BaseURL,
		UserAgent:      raw.UserAgent,
		PageDelay:      time.Duration(raw.PageDelayMs) * time.Millisecond,
		RequestTimeout: time.Duration(raw.RequestTimeout) * time.Second,
		Countries:      countries,
		Port:           raw.Port,
		Serve:          raw.Serve,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}, nil
}
