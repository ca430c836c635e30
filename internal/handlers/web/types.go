package web

import "github.com/meridianhq/meridian/internal/models"

type createSessionRequest struct {
	Lat        *float64 `json:"lat" binding:"required"`
	Lng        *float64 `json:"lng" binding:"required"`
	Label      *string  `json:"label"`
	TravelMode string   `json:"travelMode"`
}

type createSessionResponse struct {
	SessionID string `json:"sessionId"`
	ShareURL  string `json:"shareUrl"`
	PinCode   string `json:"pinCode"`
}

type joinSessionRequest struct {
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
	PinCode string   `json:"pinCode"`
	Label   *string  `json:"label"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type voteRequest struct {
	VenueID string `json:"venueId" binding:"required"`
	Voter   string `json:"voter" binding:"required"`
}

type voteResponse struct {
	AllVotesIn bool    `json:"allVotesIn"`
	WinnerID   *string `json:"winnerId,omitempty"`
}

type sessionResponse struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	UserALat        float64         `json:"userALat"`
	UserALng        float64         `json:"userALng"`
	UserALabel      *string         `json:"userALabel"`
	UserBLat        *float64        `json:"userBLat"`
	UserBLng        *float64        `json:"userBLng"`
	UserBLabel      *string         `json:"userBLabel"`
	MidpointLat     *float64        `json:"midpointLat"`
	MidpointLng     *float64        `json:"midpointLng"`
	UserATravelTime *int            `json:"userATravelTime"`
	UserBTravelTime *int            `json:"userBTravelTime"`
	TravelMode      string          `json:"travelMode"`
	WinnerVenueID   *string         `json:"winnerVenueId"`
	PinCode         string          `json:"pinCode"`
	Warning         *string         `json:"warning"`
	CreatedAt       int64           `json:"createdAt"`
	UpdatedAt       int64           `json:"updatedAt"`
	Venues          []venueResponse `json:"venues"`
	Votes           []voteRecord    `json:"votes"`
}

type venueResponse struct {
	ID               string  `json:"id"`
	SessionID        string  `json:"sessionId"`
	PlaceID          string  `json:"placeId"`
	Name             string  `json:"name"`
	Address          *string `json:"address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Rating           float64 `json:"rating"`
	UserRatingCount  int     `json:"userRatingCount"`
	Score            float64 `json:"score"`
	PriceLevel       *string `json:"priceLevel"`
	MapsURI          *string `json:"mapsUri"`
	Types            *string `json:"types"`
	Description      *string `json:"description"`
	CuisineTags      *string `json:"cuisineTags"`
	VibeTags         *string `json:"vibeTags"`
	BestFor          *string `json:"bestFor"`
	SignatureDish    *string `json:"signatureDish"`
	ReviewSentiment  *string `json:"reviewSentiment"`
	StandoutDishes   *string `json:"standoutDishes"`
	ReviewSummary    *string `json:"reviewSummary"`
	ReviewHighlights *string `json:"reviewHighlights"`
	EditorialSummary *string `json:"editorialSummary"`
}

type voteRecord struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	VenueID   string `json:"venueId"`
	Voter     string `json:"voter"`
	CreatedAt int64  `json:"createdAt"`
}

func toSessionResponse(sess *models.Session, venues []*models.Venue, votes []*models.Vote) *sessionResponse {
	resp := &sessionResponse{
		ID:              sess.ID,
		Status:          string(sess.Status),
		UserALat:        sess.UserALat,
		UserALng:        sess.UserALng,
		UserALabel:      sess.UserALabel,
		UserBLat:        sess.UserBLat,
		UserBLng:        sess.UserBLng,
		UserBLabel:      sess.UserBLabel,
		MidpointLat:     sess.MidpointLat,
		MidpointLng:     sess.MidpointLng,
		UserATravelTime: sess.UserATravelTime,
		UserBTravelTime: sess.UserBTravelTime,
		TravelMode:      string(sess.TravelMode),
		WinnerVenueID:   sess.WinnerVenueID,
		PinCode:         sess.PinCode,
		Warning:         sess.Warning,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
		Venues:          make([]venueResponse, 0, len(venues)),
		Votes:           make([]voteRecord, 0, len(votes)),
	}

	for _, v := range venues {
		resp.Venues = append(resp.Venues, toVenueResponse(v))
	}

	for _, v := range votes {
		resp.Votes = append(resp.Votes, voteRecord{
			ID:        v.ID,
			SessionID: v.SessionID,
			VenueID:   v.VenueID,
			Voter:     string(v.Voter),
			CreatedAt: v.CreatedAt,
		})
	}

	return resp
}

func toVenueResponse(v *models.Venue) venueResponse {
	return venueResponse{
		ID:               v.ID,
		SessionID:        v.SessionID,
		PlaceID:          v.PlaceID,
		Name:             v.Name,
		Address:          v.Address,
		Lat:              v.Lat,
		Lng:              v.Lng,
		Rating:           v.Rating,
		UserRatingCount:  v.UserRatingCount,
		Score:            v.Score,
		PriceLevel:       v.PriceLevel,
		MapsURI:          v.MapsURI,
		Types:            v.Types,
		Description:      v.Description,
		CuisineTags:      v.CuisineTags,
		VibeTags:         v.VibeTags,
		BestFor:          v.BestFor,
		SignatureDish:    v.SignatureDish,
		ReviewSentiment:  v.ReviewSentiment,
		StandoutDishes:   v.StandoutDishes,
		ReviewSummary:    v.ReviewSummary,
		ReviewHighlights: v.ReviewHighlights,
		EditorialSummary: v.EditorialSummary,
	}
}
