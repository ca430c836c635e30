package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/meridianhq/meridian/internal/services/session"
	"github.com/meridianhq/meridian/internal/ws"
)

// Config holds dependencies for the web handler
type Config struct {
	// Sessions is the session service
	Sessions session.Service

	// Hub is optional; when set, session lifecycle events are pushed to
	// websocket watchers
	Hub *ws.Hub

	// AllowedOrigins restricts CORS; empty allows all origins
	AllowedOrigins []string
}

// Handler serves the session API
type Handler struct {
	sessions session.Service
	hub      *ws.Hub
	origins  []string
	upgrader websocket.Upgrader
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Sessions == nil {
		return nil, errors.New("session service cannot be nil")
	}

	return &Handler{
		sessions: cfg.Sessions,
		hub:      cfg.Hub,
		origins:  cfg.AllowedOrigins,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks happen at the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}, nil
}

// Router builds the gin engine with CORS and all session routes
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(h.origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = h.origins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.POST("/sessions", h.createSession)
		api.GET("/sessions/:id", h.getSession)
		api.POST("/sessions/:id/join", h.joinSession)
		api.POST("/sessions/:id/compute", h.compute)
		api.POST("/sessions/:id/vote", h.castVote)
		api.GET("/sessions/:id/venues", h.listVenues)
		api.GET("/sessions/:id/ws", h.watch)
	}

	return r
}

// publish pushes a session event to websocket watchers when a hub is
// configured
func (h *Handler) publish(event *ws.Event) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(event)
}

// fail translates service errors into API status codes
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, session.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{"error": "Session expired", "expired": true})
	case errors.Is(err, session.ErrInvalidPin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid pin code"})
	case errors.Is(err, session.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session is not in the required state"})
	case errors.Is(err, session.ErrVenueNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
	case errors.Is(err, session.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, gin.H{"error": "Voter has already voted in this session"})
	case errors.Is(err, session.ErrInvalidLocation),
		errors.Is(err, session.ErrInvalidTravelMode),
		errors.Is(err, session.ErrInvalidVoter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
