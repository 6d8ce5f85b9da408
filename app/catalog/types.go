package catalog

// Raw record shapes returned by the browse/films endpoint. Nullable fields
// are pointers; validation tags enumerate the structural constraints a page
// must satisfy before any record is reconciled.

type Page struct {
	Films []Film `json:"films" validate:"dive"`
	Meta  *Meta  `json:"meta" validate:"required"`
}

type Meta struct {
	CurrentPage  int  `json:"current_page"`
	NextPage     *int `json:"next_page"`
	PreviousPage *int `json:"previous_page"`
	TotalPages   int  `json:"total_pages"`
	TotalCount   int  `json:"total_count"`
	PerPage      int  `json:"per_page"`
}

type Film struct {
	ID                    int                `json:"id" validate:"required"`
	Slug                  string             `json:"slug" validate:"required"`
	WebURL                string             `json:"web_url" validate:"omitempty,url"`
	TitleLocale           string             `json:"title_locale"`
	Title                 string             `json:"title" validate:"required"`
	OriginalTitle         string             `json:"original_title"`
	Directors             []Director         `json:"directors" validate:"required,dive"`
	Year                  *int               `json:"year" validate:"required"`
	Duration              *int               `json:"duration" validate:"required"` // minutes
	Consumable            *Consumable        `json:"consumable"`
	HistoricCountries     []string           `json:"historic_countries"`
	ShortSynopsis         string             `json:"short_synopsis"`
	DefaultEditorial      *string            `json:"default_editorial"`
	StillURL              string             `json:"still_url" validate:"required,url"`
	Stills                *Stills            `json:"stills"`
	AverageColourHex      string             `json:"average_colour_hex" validate:"required"`
	Genres                []string           `json:"genres"`
	Popularity            *float64           `json:"popularity" validate:"required"`
	AverageRatingOutOfTen *float64           `json:"average_rating_out_of_ten"`
	NumberOfRatings       *int               `json:"number_of_ratings"`
	MubiRelease           bool               `json:"mubi_release"`
	TrailerID             *int               `json:"trailer_id"`
	TrailerURL            *string            `json:"trailer_url" validate:"omitempty,url"`
	OptimisedTrailers     []OptimisedTrailer `json:"optimised_trailers" validate:"dive"`
	Artworks              []Artwork          `json:"artworks" validate:"dive"`
	Series                *Series            `json:"series"`
	Episode               *Episode           `json:"episode"`
}

type Director struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug"`
}

// Consumable is the availability/licensing window attached to a playable
// record. Timestamps are RFC 3339 strings or null.
type Consumable struct {
	FilmID         int     `json:"film_id" validate:"required"`
	AvailableAt    *string `json:"available_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ExpiresAt      *string `json:"expires_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Exclusive      bool    `json:"exclusive"`
	PermitDownload bool    `json:"permit_download"`
}

type Artwork struct {
	Format     string      `json:"format" validate:"required"`
	Locale     *string     `json:"locale"`
	ImageURL   string      `json:"image_url" validate:"required,url"`
	FocalPoint *FocalPoint `json:"focal_point"`
}

// FocalPoint is the relative crop anchor of an image, both axes in [0, 1].
type FocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stills are the pre-rendered size variants of a film's representative
// still image.
type Stills struct {
	Small         string `json:"small" validate:"omitempty,url"`
	Medium        string `json:"medium" validate:"omitempty,url"`
	SmallOverlaid string `json:"small_overlaid" validate:"omitempty,url"`
	Standard      string `json:"standard" validate:"omitempty,url"`
	StandardPush  string `json:"standard_push" validate:"omitempty,url"`
	Retina        string `json:"retina" validate:"omitempty,url"`
	LargeOverlaid string `json:"large_overlaid" validate:"omitempty,url"`
}

type OptimisedTrailer struct {
	URL     string `json:"url" validate:"required,url"`
	Profile string `json:"profile"`
}

// Episode marks a record as an episode-as-film: a TV series represented by
// a single film-shaped record carrying series and episode sub-objects.
type Episode struct {
	Label        string `json:"label"`
	Number       int    `json:"number"`
	SeriesTitle  string `json:"series_title"`
	SeasonNumber int    `json:"season_number"`
	SeasonTitle  string `json:"season_title"`
	EpisodeTitle string `json:"episode_title"`
	SeriesID     int    `json:"series_id" validate:"required"`
	SeasonID     int    `json:"season_id"`
}

type Series struct {
	ID                    int       `json:"id" validate:"required"`
	Slug                  string    `json:"slug" validate:"required"`
	WebURL                string    `json:"web_url" validate:"omitempty,url"`
	Title                 string    `json:"title" validate:"required"`
	OriginalTitle         string    `json:"original_title"`
	EpisodeCount          int       `json:"episode_count"`
	SeasonCount           int       `json:"season_count"`
	Limited               bool      `json:"limited"`
	Genres                []string  `json:"genres"`
	AverageRatingOutOfTen *float64  `json:"average_rating_out_of_ten"`
	NumberOfRatings       *int      `json:"number_of_ratings"`
	ShortSynopsis         string    `json:"short_synopsis"`
	DefaultEditorial      string    `json:"default_editorial"`
	Seasons               []Season  `json:"seasons" validate:"dive"`
	Artworks              []Artwork `json:"artworks" validate:"dive"`
}

type Season struct {
	ID               int     `json:"id" validate:"required"`
	Slug             string  `json:"slug" validate:"required"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	SeasonNumber     int     `json:"season_number"`
	ReleaseYear      int     `json:"release_year"`
	TrailerURL       *string `json:"trailer_url" validate:"omitempty,url"`
	EpisodeCount     int     `json:"episode_count"`
	ShortSynopsis    string  `json:"short_synopsis"`
	DefaultEditorial string  `json:"default_editorial"`
}
