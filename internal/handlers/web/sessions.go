package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/services/session"
	"github.com/meridianhq/meridian/internal/ws"
)

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, err := h.sessions.CreateSession(c.Request.Context(), &session.CreateSessionInput{
		Location: models.LatLng{Lat: *req.Lat, Lng: *req.Lng},
		Label:    req.Label,
		Mode:     models.TravelMode(req.TravelMode),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, createSessionResponse{
		SessionID: output.Session.ID,
		ShareURL:  output.ShareURL,
		PinCode:   output.Session.PinCode,
	})
}

func (h *Handler) getSession(c *gin.Context) {
	output, err := h.sessions.GetSession(c.Request.Context(), &session.GetSessionInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(output.Session, output.Venues, output.Votes))
}

func (h *Handler) joinSession(c *gin.Context) {
	var req joinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	output, err := h.sessions.JoinSession(c.Request.Context(), &session.JoinSessionInput{
		SessionID: sessionID,
		PinCode:   req.PinCode,
		Location:  models.LatLng{Lat: *req.Lat, Lng: *req.Lng},
		Label:     req.Label,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(&ws.Event{
		Type:      ws.EventPartyJoined,
		SessionID: sessionID,
		Status:    string(output.Session.Status),
	})

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) compute(c *gin.Context) {
	sessionID := c.Param("id")

	h.publish(&ws.Event{
		Type:      ws.EventComputing,
		SessionID: sessionID,
		Status:    string(models.SessionStatusComputing),
	})

	_, err := h.sessions.Compute(c.Request.Context(), &session.ComputeInput{
		SessionID: sessionID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(&ws.Event{
		Type:      ws.EventVotingOpen,
		SessionID: sessionID,
		Status:    string(models.SessionStatusVoting),
	})

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *Handler) castVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("id")
	output, err := h.sessions.CastVote(c.Request.Context(), &session.CastVoteInput{
		SessionID: sessionID,
		VenueID:   req.VenueID,
		Voter:     models.Voter(req.Voter),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(&ws.Event{
		Type:      ws.EventVoteCast,
		SessionID: sessionID,
		Voter:     req.Voter,
	})

	resp := voteResponse{AllVotesIn: output.AllVotesIn, WinnerID: output.WinnerVenueID}
	if output.AllVotesIn && output.WinnerVenueID != nil {
		h.publish(&ws.Event{
			Type:      ws.EventCompleted,
			SessionID: sessionID,
			Status:    string(models.SessionStatusCompleted),
			WinnerID:  *output.WinnerVenueID,
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listVenues(c *gin.Context) {
	output, err := h.sessions.ListVenues(c.Request.Context(), &session.ListVenuesInput{
		SessionID: c.Param("id"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	venues := make([]venueResponse, 0, len(output.Venues))
	for _, v := range output.Venues {
		venues = append(venues, toVenueResponse(v))
	}

	c.JSON(http.StatusOK, gin.H{"venues": venues})
}

// watch upgrades the connection and streams session events until the
// client goes away
func (h *Handler) watch(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Live updates are not enabled"})
		return
	}

	sessionID := c.Param("id")

	// Reject missing or expired sessions before upgrading
	if _, err := h.sessions.GetSession(c.Request.Context(), &session.GetSessionInput{
		SessionID: sessionID,
	}); err != nil {
		h.fail(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, sessionID)
	go client.WritePump()
	go client.ReadPump()
}
