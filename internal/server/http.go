package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TempeQuest/internal/game"
)

/* ------------------------------- HTTP ------------------------------- */

// NewRouter wires the HTTP endpoints and the websocket upgrade.
func NewRouter(h *game.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "title": h.Graph().Title})
	})

	api := r.Group("/api")
	{
		api.GET("/characters", listCharacters(h))
	}

	r.GET("/ws", serveWS(h))
	return r
}

// listCharacters returns the roster with visible baseline stats.
func listCharacters(h *game.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		roster := h.Graph().Roster()
		out := make([]characterDTO, 0, len(roster))
		for _, def := range roster {
			out = append(out, characterDTO{
				Identity:    string(def.Identity),
				DisplayName: def.Identity.DisplayName(),
				Stats:       statsToDTO(def.Stats.Visible()),
			})
		}
		c.JSON(http.StatusOK, out)
	}
}
