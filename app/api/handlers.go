package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ebalashov/filmsync/app/cfg"
	"github.com/ebalashov/filmsync/app/database"
)

const (
	defaultPerPage = 50
	maxPerPage     = 100
)

func NewHandler(films *database.FilmRepository, consumables *database.ConsumableRepository,
	metadata *database.MetadataRepository, countries []cfg.Country) *Handler {
	return &Handler{
		films:       films,
		consumables: consumables,
		metadata:    metadata,
		countries:   countries,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	filmCount, err := h.films.GetFilmCount("")
	if err != nil {
		slog.Error("Database error", "operation", "film_count", "error", err)
		health["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	health["status"] = "ok"
	health["films"] = filmCount
	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	filmCount, err := h.films.GetFilmCount(database.TypeFilm)
	if err != nil {
		slog.Error("Database error", "operation", "film_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	seriesCount, err := h.films.GetFilmCount(database.TypeSeries)
	if err != nil {
		slog.Error("Database error", "operation", "series_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	countryCounts, err := h.consumables.GetCountryCounts()
	if err != nil {
		slog.Error("Database error", "operation", "country_counts", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	updatedAt, err := h.metadata.GetUpdatedAt()
	if err != nil {
		slog.Error("Database error", "operation", "run_metadata", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	names := make(map[string]string, len(h.countries))
	for _, country := range h.countries {
		names[country.Code] = country.Name
	}

	countries := make([]gin.H, 0, len(countryCounts))
	for _, count := range countryCounts {
		countries = append(countries, gin.H{
			"code":  count.CountryCode,
			"name":  names[count.CountryCode],
			"films": count.Count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"films":        filmCount,
		"series":       seriesCount,
		"countries":    countries,
		"last_sync_at": updatedAt,
	})
}

func (h *Handler) ListFilms(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 || perPage > maxPerPage {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid per_page"})
		return
	}

	country := c.Query("country")

	films, err := h.films.GetFilms(country, perPage, (page-1)*perPage)
	if err != nil {
		slog.Error("Database error", "operation", "list_films", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	responses := make([]filmResponse, 0, len(films))
	for _, film := range films {
		responses = append(responses, toFilmResponse(film))
	}

	c.JSON(http.StatusOK, gin.H{
		"films":    responses,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *Handler) GetFilm(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid film id"})
		return
	}

	film, err := h.films.GetFilm(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_film", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if film == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "film not found"})
		return
	}

	consumables, err := h.consumables.GetConsumables(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_consumables", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	response := toFilmResponse(*film)
	c.JSON(http.StatusOK, gin.H{
		"film":         response,
		"availability": toAvailabilityResponses(consumables),
	})
}
