package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ebalashov/filmsync/app/cfg"
)

// NewServer creates the read-only catalog HTTP server. It never writes to
// the store; sync runs are a separate invocation.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)
	r.GET("/films", handler.ListFilms)
	r.GET("/films/:id", handler.GetFilm)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "FilmSync",
			"version": cfg.GetVersion(),
			"endpoints": map[string]string{
				"films":  "/films?page=<n>&per_page=<n>&country=<code>",
				"film":   "/films/<id>",
				"stats":  "/stats",
				"health": "/health",
			},
		})
	})

	return r
}
