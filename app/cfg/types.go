package cfg

import "time"

type Cfg struct {
	// Store configuration
	DBPath string

	// Catalog API configuration
	BaseURL        string
	UserAgent      string
	PageDelay      time.Duration
	RequestTimeout time.Duration

	// Country markets to ingest, in processing order
	Countries []Country

	// HTTP server configuration (serve mode)
	Port  string
	Serve bool

	// Application metadata
	Debug   bool
	Version string
}

// Country is one market the catalog is fetched for. Code is an ISO 3166-1
// alpha-2 region code; Name is a human-readable label used in logs and stats.
type Country struct {
	Code string
	Name string
}
