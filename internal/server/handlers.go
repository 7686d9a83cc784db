// internal/server/handlers.go
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/status"
)

// Board is the view surface the HTTP layer drives.
type Board interface {
	Page() dashboard.Page
	Live() bool
	PollState() dashboard.PollState
	FetchHealth(ctx context.Context) (status.State, error)
	SetLive(on bool) bool
	ToggleLive() bool
}

type liveRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type liveResponse struct {
	Live    bool   `json:"live"`
	Poll    string `json:"poll"`
	Changed bool   `json:"changed"`
}

type handlers struct {
	board Board
}

func (h *handlers) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html.tmpl", h.board.Page())
}

func (h *handlers) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Page())
}

// refresh waits for the fetch it triggers. A failed fetch is still a 200:
// the board shows API down, same as the page.
func (h *handlers) refresh(c *gin.Context) {
	_, err := h.board.FetchHealth(c.Request.Context())
	switch {
	case errors.Is(err, dashboard.ErrClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "board closed"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "refresh not applied before request ended"})
		return
	}
	c.JSON(http.StatusOK, h.board.Page())
}

func (h *handlers) setLive(c *gin.Context) {
	var req liveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `body must be {"enabled": true|false}`})
		return
	}

	changed := h.board.SetLive(*req.Enabled)
	c.JSON(http.StatusOK, h.liveResponse(changed))
}

func (h *handlers) toggleLive(c *gin.Context) {
	before := h.board.Live()
	after := h.board.ToggleLive()
	c.JSON(http.StatusOK, h.liveResponse(before != after))
}

func (h *handlers) liveResponse(changed bool) liveResponse {
	return liveResponse{
		Live:    h.board.Live(),
		Poll:    h.board.PollState().String(),
		Changed: changed,
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
