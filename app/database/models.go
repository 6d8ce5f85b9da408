package database

// Film type discriminator values.
const (
	TypeFilm   = "film"
	TypeSeries = "series"
)

// Film is one row of the films table. The upstream id is the primary key
// for both plain films and series. Nullable columns are pointers.
type Film struct {
	ID               int
	Slug             string
	Title            string
	OriginalTitle    string
	Directors        string // flattened display string, e.g. "Agnès Varda, Jacques Demy"
	Year             int
	Duration         int // minutes; 0 for series
	Synopsis         string
	Editorial        *string
	StillURL         *string
	TrailerURL       *string
	AverageColourHex string
	AverageRating    *float64
	NumberOfRatings  *int
	Popularity       float64
	Type             string // TypeFilm or TypeSeries
}

// Consumable is one row of the film_consumables table: the availability
// window of a film in one country market. Timestamps are stored verbatim as
// the RFC 3339 strings the API returns.
type Consumable struct {
	FilmID      int
	CountryCode string
	AvailableAt *string
	ExpiresAt   *string
}

// CountryCount is a per-country availability row count, used by stats.
type CountryCount struct {
	CountryCode string
	Count       int
}
