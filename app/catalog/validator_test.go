package catalog

import (
	"errors"
	"strings"
	"testing"
)

const validPageJSON = `{
  "films": [
    {
      "id": 123,
      "slug": "the-red-shoes",
      "web_url": "https://example.com/films/the-red-shoes",
      "title": "The Red Shoes",
      "original_title": "The Red Shoes",
      "directors": [
        {"name": "Michael Powell", "slug": "michael-powell"},
        {"name": "Emeric Pressburger", "slug": "emeric-pressburger"}
      ],
      "year": 1948,
      "duration": 135,
      "consumable": {
        "film_id": 123,
        "available_at": "2026-08-01T00:00:00Z",
        "expires_at": "2026-09-01T00:00:00Z",
        "exclusive": false,
        "permit_download": true
      },
      "short_synopsis": "A ballerina is torn between art and love.",
      "default_editorial": "A Technicolor masterpiece.",
      "still_url": "https://images.example.com/red-shoes.jpg",
      "average_colour_hex": "#8a2d2b",
      "popularity": 431.2,
      "average_rating_out_of_ten": 8.7,
      "number_of_ratings": 1042,
      "trailer_url": null,
      "series": null,
      "episode": null
    }
  ],
  "meta": {
    "current_page": 1,
    "next_page": null,
    "previous_page": null,
    "total_pages": 1,
    "total_count": 1,
    "per_page": 24
  }
}`

func TestParsePageValid(t *testing.T) {
	page, err := ParsePage([]byte(validPageJSON))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(page.Films) != 1 {
		t.Fatalf("Expected 1 film, got %d", len(page.Films))
	}

	film := page.Films[0]
	if film.ID != 123 {
		t.Errorf("Expected id 123, got %d", film.ID)
	}
	if film.Consumable == nil || film.Consumable.AvailableAt == nil {
		t.Fatal("Expected consumable with available_at")
	}
	if *film.Consumable.AvailableAt != "2026-08-01T00:00:00Z" {
		t.Errorf("Unexpected available_at: %s", *film.Consumable.AvailableAt)
	}
	if film.Episode != nil {
		t.Error("Expected plain film, got episode record")
	}
	if page.Meta.NextPage != nil {
		t.Errorf("Expected null next_page, got %d", *page.Meta.NextPage)
	}
}

func TestParsePageMissingField(t *testing.T) {
	broken := strings.Replace(validPageJSON, `"slug": "the-red-shoes",`, "", 1)

	_, err := ParsePage([]byte(broken))
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if len(ve.Fields) == 0 {
		t.Fatal("Expected at least one field error")
	}
	if !strings.Contains(ve.Fields[0].Path, "Slug") {
		t.Errorf("Expected field path naming Slug, got %s", ve.Fields[0].Path)
	}
	if ve.Fields[0].Rule != "required" {
		t.Errorf("Expected rule 'required', got %s", ve.Fields[0].Rule)
	}
}

func TestParsePageMissingMeta(t *testing.T) {
	_, err := ParsePage([]byte(`{"films": []}`))
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if !strings.Contains(ve.Fields[0].Path, "Meta") {
		t.Errorf("Expected field path naming Meta, got %s", ve.Fields[0].Path)
	}
	if ve.Fields[0].Rule != "required" {
		t.Errorf("Expected rule 'required', got %s", ve.Fields[0].Rule)
	}
}

func TestParsePageMissingNumericFields(t *testing.T) {
	broken := validPageJSON
	for _, field := range []string{`"year": 1948,`, `"duration": 135,`, `"popularity": 431.2,`} {
		broken = strings.Replace(broken, field, "", 1)
	}

	_, err := ParsePage([]byte(broken))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("Expected 3 field errors, got %d: %v", len(ve.Fields), ve.Fields)
	}
	for _, f := range ve.Fields {
		if f.Rule != "required" {
			t.Errorf("Expected rule 'required' for %s, got %s", f.Path, f.Rule)
		}
	}
}

func TestParsePageMissingDirectors(t *testing.T) {
	broken := strings.Replace(validPageJSON, `"directors": [
        {"name": "Michael Powell", "slug": "michael-powell"},
        {"name": "Emeric Pressburger", "slug": "emeric-pressburger"}
      ],`, `"directors": null,`, 1)

	_, err := ParsePage([]byte(broken))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if !strings.Contains(ve.Fields[0].Path, "Directors") {
		t.Errorf("Expected field path naming Directors, got %s", ve.Fields[0].Path)
	}
}

func TestParsePageMalformedURL(t *testing.T) {
	broken := strings.Replace(validPageJSON,
		`"still_url": "https://images.example.com/red-shoes.jpg"`,
		`"still_url": "not a url"`, 1)

	_, err := ParsePage([]byte(broken))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if ve.Fields[0].Rule != "url" {
		t.Errorf("Expected rule 'url', got %s", ve.Fields[0].Rule)
	}
}

func TestParsePageMalformedTimestamp(t *testing.T) {
	broken := strings.Replace(validPageJSON,
		`"available_at": "2026-08-01T00:00:00Z"`,
		`"available_at": "tomorrow"`, 1)

	_, err := ParsePage([]byte(broken))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if ve.Fields[0].Rule != "datetime" {
		t.Errorf("Expected rule 'datetime', got %s", ve.Fields[0].Rule)
	}
}

func TestParsePageWrongType(t *testing.T) {
	broken := strings.Replace(validPageJSON, `"id": 123,`, `"id": "123",`, 1)

	_, err := ParsePage([]byte(broken))
	if err == nil {
		t.Fatal("Expected decode error, got nil")
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatal("Type mismatch should fail decoding, not field validation")
	}
}

func TestParsePageNotAnObject(t *testing.T) {
	if _, err := ParsePage([]byte(`[1, 2, 3]`)); err == nil {
		t.Fatal("Expected decode error, got nil")
	}
}
